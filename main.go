package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kacebover/imageshrink/gui/controller"
	"github.com/kacebover/imageshrink/logging"
	"github.com/kacebover/imageshrink/resizer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// NewRootCmd creates the imageshrink command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool
	logger := logging.Nop()

	rootCmd := &cobra.Command{
		Use:   "imageshrink",
		Short: "Resize images to an exact width and height",
		Long: controller.AppName + ` ` + controller.AppVersion + `
Resize an image to an exact width and height. The copy keeps the source
file name and is written to the output folder (Downloads by default).

Use "imageshrink gui" to learn how to start the desktop application.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			*logger = *logging.NewDefaultCLILogger()
			logging.SetVerbose(verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.Version = controller.AppVersion

	rootCmd.AddCommand(newResizeCmd(logger))
	rootCmd.AddCommand(newGUICmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newResizeCmd(logger *logging.Logger) *cobra.Command {
	var (
		width, height int
		dest          string
		filter        string
		quality       int
		open          bool
	)

	cmd := &cobra.Command{
		Use:   "resize <image>",
		Short: "Resize one image",
		Example: `  imageshrink resize photo.jpg --width 800 --height 600
  imageshrink resize icon.png -W 64 -H 64 --dest ./out --filter nearest`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := controller.LoadConfig()
			if dest != "" {
				cfg.DestinationDir = dest
			}
			if filter != "" {
				cfg.Filter = filter
			}
			if quality != 0 {
				cfg.JPEGQuality = quality
			}

			f, err := resizer.ParseFilter(cfg.Filter)
			if err != nil {
				return err
			}
			if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
				return fmt.Errorf("quality must be between 1 and 100, got %d", cfg.JPEGQuality)
			}

			var opener resizer.Opener
			if open {
				opener = resizer.SystemOpener{}
			}

			h := resizer.NewHandler(
				resizer.WithLogger(logger),
				resizer.WithOpener(opener),
				resizer.WithFilter(f),
				resizer.WithJPEGQuality(cfg.JPEGQuality),
				resizer.WithDestination(cfg.DestinationDir),
				resizer.WithMaxDimension(cfg.MaxDimension),
			)

			req := resizer.Request{
				SourcePath:     args[0],
				Width:          width,
				Height:         height,
				DestinationDir: h.Destination(),
			}

			res := h.Resize(cmd.Context(), req)
			if !res.OK() {
				return res.Err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.OutputPath)
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "W", 0, "Target width in pixels")
	cmd.Flags().IntVarP(&height, "height", "H", 0, "Target height in pixels")
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Output folder (default from config, usually ~/Downloads)")
	cmd.Flags().StringVar(&filter, "filter", "", fmt.Sprintf("Resampling filter %v", resizer.Filters()))
	cmd.Flags().IntVarP(&quality, "quality", "q", 0, "JPEG quality 1-100 (default from config)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the output folder when done")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}

func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Show how to start the desktop application",
		Run: func(cmd *cobra.Command, args []string) {
			LaunchGUI(cmd.OutOrStdout())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", controller.AppName, controller.AppVersion)
		},
	}
}
