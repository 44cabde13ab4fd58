package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/jnrrd/internal/bytesize"
	"github.com/marmos91/jnrrd/internal/logger"
	"github.com/marmos91/jnrrd/pkg/format"
	"github.com/marmos91/jnrrd/pkg/jnrrd"
)

var (
	convertEncoding string
	convertEndian   string
	convertLevel    int
	convertDetach   string
	convertForce    bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <source> <destination>",
	Short: "Re-encode an image file",
	Long: `Convert reads an image in any registered format and writes it as
JNRRD with the requested payload encoding and byte order.

With --detach the payload is written to a separate data file and the
destination header references it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, dst := args[0], args[1]

		if !convertForce && fileExists(dst) {
			return fmt.Errorf("destination %s already exists (use --force to overwrite)", dst)
		}

		codec, err := format.ByPath(src)
		if err != nil {
			return err
		}
		img, err := codec.Read(src)
		if err != nil {
			return err
		}
		logger.Info("image loaded",
			"source", src,
			"format", codec.Name,
			"type", img.Type.String(),
			"size", bytesize.Format(len(img.Data)))

		opts := &jnrrd.Options{
			Encoding: convertEncoding,
			Endian:   convertEndian,
			Level:    convertLevel,
		}
		if convertDetach != "" {
			if err := jnrrd.WriteDetached(dst, convertDetach, img, opts); err != nil {
				return err
			}
			logger.Info("image written", "header", dst, "data_file", convertDetach, "encoding", convertEncoding)
			return nil
		}
		if err := jnrrd.WriteFile(dst, img, opts); err != nil {
			return err
		}
		logger.Info("image written", "destination", dst, "encoding", convertEncoding)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertEncoding, "encoding", "e", "raw", "payload encoding (raw, gzip, bzip2, zstd, lz4, ascii, hex)")
	convertCmd.Flags().StringVar(&convertEndian, "endian", "", "payload byte order (little, big; default: host order)")
	convertCmd.Flags().IntVarP(&convertLevel, "level", "l", 0, "compression level (0 = codec default)")
	convertCmd.Flags().StringVar(&convertDetach, "detach", "", "write the payload to this separate data file")
	convertCmd.Flags().BoolVarP(&convertForce, "force", "f", false, "overwrite the destination if it exists")
}
