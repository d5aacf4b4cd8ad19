// SPDX-License-Identifier: EPL-2.0

// Package discover finds input recordings and maps each one to the path its
// recording should be written to.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSuffixes match WAV files in either case.
var DefaultSuffixes = []string{".wav", ".WAV"}

// ErrNotDirectory is returned when the input root is not a directory.
var ErrNotDirectory = errors.New("input root is not a directory")

// Pair links an input file with its output location.
type Pair struct {
	Input  string
	Output string
}

// Pairs walks inputDir and returns a Pair for every regular file whose name
// ends in one of suffixes (DefaultSuffixes when none are given). Matching is
// case-sensitive. The output path is the input path with the inputDir prefix
// replaced by outputDir. Files that are not WAV get a ".wav" extension on
// the output side. Symlinks to regular files count as files; symlinked
// subdirectories are not followed. Nothing is created on disk.
func Pairs(inputDir, outputDir string, suffixes ...string) ([]Pair, error) {
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}

	// Walk the resolved root so a symlinked input directory is entered,
	// then report paths under the root as the caller spelled it.
	resolved, err := filepath.EvalSymlinks(inputDir)
	if err != nil {
		return nil, fmt.Errorf("input root %q: %w", inputDir, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("input root %q: %w", inputDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, inputDir)
	}

	var pairs []Pair

	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !isRegularFile(path, d) {
			return nil
		}

		suffix, ok := matchSuffix(d.Name(), suffixes)
		if !ok {
			return nil
		}

		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		in := filepath.Join(inputDir, rel)

		out, err := OutputPath(inputDir, outputDir, in)
		if err != nil {
			return err
		}
		if !isWAV(suffix) {
			out = strings.TrimSuffix(out, suffix) + ".wav"
		}

		pairs = append(pairs, Pair{Input: in, Output: out})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", inputDir, err)
	}

	return pairs, nil
}

// OutputPath maps path, which must live under inputDir, to the same
// relative location under outputDir.
func OutputPath(inputDir, outputDir, path string) (string, error) {
	rel, err := filepath.Rel(inputDir, path)
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", path, inputDir)
	}

	return filepath.Join(outputDir, rel), nil
}

// isRegularFile reports whether d is a regular file or a symlink that
// resolves to one.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func matchSuffix(name string, suffixes []string) (string, bool) {
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(name, s) {
			return s, true
		}
	}

	return "", false
}

func isWAV(suffix string) bool {
	return strings.EqualFold(suffix, ".wav")
}
