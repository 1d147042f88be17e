package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tesla3327/literoom"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "develop":
		if err := runDevelop(os.Args[2:]); err != nil {
			fail(err)
		}
	case "thumb":
		if err := runThumb(os.Args[2:]); err != nil {
			fail(err)
		}
	case "histogram":
		if err := runHistogram(os.Args[2:]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: literoom <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  develop   -in input.jpg -out output.jpg [-settings edits.json] [-q 90]")
	fmt.Fprintln(os.Stderr, "  thumb     -in raw.tif -out thumb.jpg [-max 256] [-q 85]")
	fmt.Fprintln(os.Stderr, "  histogram -in input.jpg")
}

func runDevelop(args []string) error {
	fs := flag.NewFlagSet("develop", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image (JPEG, PNG, or TIFF)")
	outPath := fs.String("out", "", "output JPEG")
	settingsPath := fs.String("settings", "", "develop settings JSON")
	q := fs.Int("q", 90, "output quality")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}

	var settings literoom.DevelopSettings
	if *settingsPath != "" {
		raw, err := os.ReadFile(filepath.Clean(*settingsPath))
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &settings); err != nil {
			return fmt.Errorf("parse settings: %w", err)
		}
	}

	img, err := decodeFile(*inPath)
	if err != nil {
		return err
	}
	out, err := literoom.Develop(img, settings)
	if err != nil {
		return err
	}
	return encodeFile(*outPath, out, *q)
}

func runThumb(args []string) error {
	fs := flag.NewFlagSet("thumb", flag.ContinueOnError)
	inPath := fs.String("in", "", "input RAW/TIFF or image")
	outPath := fs.String("out", "", "output JPEG")
	maxDim := fs.Uint("max", 256, "maximum thumbnail dimension")
	q := fs.Int("q", 85, "output quality")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}
	data, err := os.ReadFile(filepath.Clean(*inPath))
	if err != nil {
		return err
	}

	// Prefer the embedded JPEG preview when the container carries one.
	if thumb, err := literoom.ExtractThumbnail(data); err == nil {
		return os.WriteFile(filepath.Clean(*outPath), thumb, 0o644)
	}

	img, err := decodeFile(*inPath)
	if err != nil {
		return err
	}
	return encodeFile(*outPath, literoom.Preview(img, *maxDim), *q)
}

func runHistogram(args []string) error {
	fs := flag.NewFlagSet("histogram", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	img, err := decodeFile(*inPath)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(literoom.ComputeHistogram(img.Pix))
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(payload))
	return nil
}

func decodeFile(path string) (literoom.Raster, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return literoom.Raster{}, err
	}
	defer f.Close()
	return literoom.Decode(f)
}

func encodeFile(path string, img literoom.Raster, quality int) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := literoom.EncodeJPEG(f, img, quality); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
