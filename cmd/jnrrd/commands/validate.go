package commands

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/jnrrd/internal/bytesize"
	"github.com/marmos91/jnrrd/pkg/jnrrd"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check that JNRRD files decode cleanly",
	Long: `Validate parses each header, resolves its geometry and decodes the
full payload, reporting the first problem found. The exit status is
non-zero when any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var firstErr error
		for _, path := range args {
			img, err := jnrrd.ReadFile(path)
			if err != nil {
				cmd.Printf("%s: INVALID: %v\n", path, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			cmd.Printf("%s: OK (%s %v, %s payload)\n",
				path, img.Type, img.Sizes, bytesize.Format(len(img.Data)))
		}
		return firstErr
	},
}
