package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marmos91/jnrrd/internal/bytesize"
	"github.com/marmos91/jnrrd/internal/cli/output"
	"github.com/marmos91/jnrrd/pkg/geometry"
	"github.com/marmos91/jnrrd/pkg/header"
	"github.com/marmos91/jnrrd/pkg/image"
)

var infoOutputFormat string

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show header, geometry and payload details of a JNRRD file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(infoOutputFormat)
		if err != nil {
			return err
		}
		info, err := collectInfo(args[0])
		if err != nil {
			return err
		}
		if format == output.FormatTable {
			return output.PrintTable(cmd.OutOrStdout(), info.table())
		}
		return output.Print(cmd.OutOrStdout(), format, info)
	},
}

func init() {
	infoCmd.Flags().StringVarP(&infoOutputFormat, "output", "o", "table", "output format (table, json, yaml)")
}

// fileInfo is the info command's result in a marshal-friendly shape.
type fileInfo struct {
	Path       string    `json:"path" yaml:"path"`
	Version    string    `json:"version" yaml:"version"`
	Type       string    `json:"type" yaml:"type"`
	Dimension  int       `json:"dimension" yaml:"dimension"`
	Sizes      []int     `json:"sizes" yaml:"sizes"`
	Encoding   string    `json:"encoding" yaml:"encoding"`
	Endian     string    `json:"endian,omitempty" yaml:"endian,omitempty"`
	Space      string    `json:"space,omitempty" yaml:"space,omitempty"`
	Spacing    []float64 `json:"spacing" yaml:"spacing"`
	Origin     []float64 `json:"origin" yaml:"origin"`
	DataFile   string    `json:"data_file,omitempty" yaml:"data_file,omitempty"`
	Payload    int       `json:"payload_bytes" yaml:"payload_bytes"`
	Extensions []string  `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func collectInfo(path string) (*fileInfo, error) {
	h, err := header.ParseFile(path)
	if err != nil {
		return nil, err
	}

	info := &fileInfo{Path: path, Encoding: h.Encoding()}
	if info.Version, err = h.Version(); err != nil {
		return nil, err
	}
	if info.Type, err = h.Type(); err != nil {
		return nil, err
	}
	if info.Dimension, err = h.Dimension(); err != nil {
		return nil, err
	}
	if info.Sizes, err = h.Sizes(); err != nil {
		return nil, err
	}
	info.Endian, _ = h.Endian()
	info.Space, _ = h.Space()
	info.DataFile, _ = h.DataFile()
	info.Extensions = h.Namespaces()

	geo, err := geometry.Resolve(h)
	if err != nil {
		return nil, err
	}
	info.Spacing = geo.Spacing
	info.Origin = geo.Origin

	// Block payloads have no computable size.
	if t, err := image.ParseSampleType(info.Type); err == nil {
		if n, err := image.NumBytes(t, info.Sizes...); err == nil {
			info.Payload = n
		}
	}
	return info, nil
}

func (i *fileInfo) table() *output.Table {
	tbl := output.NewTable("Field", "Value")
	tbl.AddRow("path", i.Path)
	tbl.AddRow("version", i.Version)
	tbl.AddRow("type", i.Type)
	tbl.AddRow("dimension", strconv.Itoa(i.Dimension))
	tbl.AddRow("sizes", joinInts(i.Sizes))
	tbl.AddRow("encoding", i.Encoding)
	if i.Endian != "" {
		tbl.AddRow("endian", i.Endian)
	}
	if i.Space != "" {
		tbl.AddRow("space", i.Space)
	}
	tbl.AddRow("spacing", joinFloats(i.Spacing))
	tbl.AddRow("origin", joinFloats(i.Origin))
	if i.DataFile != "" {
		tbl.AddRow("data file", i.DataFile)
	}
	if i.Payload > 0 {
		tbl.AddRow("payload", fmt.Sprintf("%s (%d bytes)", bytesize.Format(i.Payload), i.Payload))
	}
	if len(i.Extensions) > 0 {
		tbl.AddRow("extensions", strings.Join(i.Extensions, ", "))
	}
	return tbl
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " x ")
}

func joinFloats(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
