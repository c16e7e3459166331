// Package notebook converts Jupyter notebooks into plain Python scripts.
// Code cells are copied verbatim, markdown cells become comment blocks and
// every other cell type is dropped.
package notebook

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidNotebook is returned when the input is not a notebook document
var ErrInvalidNotebook = errors.New("not a valid Jupyter notebook")

type document struct {
	Cells []cell `json:"cells"`
}

type cell struct {
	CellType string     `json:"cell_type"`
	Source   cellSource `json:"source"`
}

// cellSource accepts both encodings nbformat allows: a single string or a
// list of line strings.
type cellSource string

func (s *cellSource) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = cellSource(text)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("cell source must be a string or a list of strings: %w", err)
	}
	*s = cellSource(strings.Join(lines, ""))
	return nil
}

// Convert reads a notebook from r and writes the script to w. sourceName is
// used in the header line only.
func Convert(r io.Reader, w io.Writer, sourceName string) error {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidNotebook, sourceName, err)
	}
	if doc.Cells == nil {
		return fmt.Errorf("%w: %s: missing cells", ErrInvalidNotebook, sourceName)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Converted from %s\n\n", sourceName)
	for _, c := range doc.Cells {
		switch c.CellType {
		case "code":
			bw.WriteString(string(c.Source))
			bw.WriteString("\n\n")
		case "markdown":
			bw.WriteString(commentOut(string(c.Source)))
			bw.WriteString("\n\n")
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("notebook: write script: %w", err)
	}
	return nil
}

// ConvertFile converts inPath and writes the result to outPath, or next to the
// input with a .py extension when outPath is empty. It returns the path
// written. The output file is only created once the notebook has been read
// successfully.
func ConvertFile(inPath, outPath string) (string, error) {
	if outPath == "" {
		outPath = ScriptPath(inPath)
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		return "", fmt.Errorf("notebook: read %s: %w", inPath, err)
	}

	var script strings.Builder
	if err := Convert(bytes.NewReader(data), &script, inPath); err != nil {
		return "", err
	}

	if err := os.WriteFile(outPath, []byte(script.String()), 0o644); err != nil {
		return "", fmt.Errorf("notebook: write %s: %w", outPath, err)
	}
	return outPath, nil
}

// ScriptPath replaces the extension of a notebook path with .py
func ScriptPath(inPath string) string {
	return strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".py"
}

func commentOut(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = "#"
		} else {
			lines[i] = "# " + line
		}
	}
	return strings.Join(lines, "\n")
}
