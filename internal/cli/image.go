package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pillbox/pkg/errors"
	"github.com/matzehuels/pillbox/pkg/pillbox"
)

// imageCommand creates the image command.
func (c *CLI) imageCommand() *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "image <image-id>",
		Short: "Print download URLs for a pill image",
		Long: `Print the URL of a pill image for the given image id.

Image ids come from the image_id field of a search result. Without --size
the URL for every size is printed.`,
		Example: `  pillbox image 00093-0058-01_NLMIMAGE10_3C1D2F3A
  pillbox image 00093-0058-01_NLMIMAGE10_3C1D2F3A --size large`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if id == "" {
				return errors.New(errors.ErrCodeInvalidInput, "image id is empty")
			}
			if size != "" {
				s, err := pillbox.ParseImageSize(size)
				if err != nil {
					return err
				}
				printLink(c.out, string(s), pillbox.ImageURL(id, s))
				return nil
			}
			for _, s := range pillbox.ImageSizes() {
				printLink(c.out, string(s), pillbox.ImageURL(id, s))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&size, "size", "s", "", "image size: super_small, small, medium, large")
	_ = cmd.RegisterFlagCompletionFunc("size", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return imageSizeNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
