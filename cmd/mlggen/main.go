package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kikiluvv/mlggen/internal/assets"
	"github.com/kikiluvv/mlggen/internal/clips"
	"github.com/kikiluvv/mlggen/internal/config"
	"github.com/kikiluvv/mlggen/internal/effects"
	"github.com/kikiluvv/mlggen/internal/ffmpeg"
	"github.com/kikiluvv/mlggen/internal/gui"
	"github.com/kikiluvv/mlggen/internal/logging"
	"github.com/kikiluvv/mlggen/internal/pipeline"
	"github.com/kikiluvv/mlggen/internal/render"
	"github.com/kikiluvv/mlggen/pkg/util"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", errorKind(err), err)
		os.Exit(1)
	}
}

// errorKind names the error category for the CLI message
func errorKind(err error) string {
	switch {
	case errors.Is(err, effects.ErrInvalidParameter):
		return "invalid parameter"
	case errors.Is(err, assets.ErrMissing):
		return "missing asset"
	case errors.Is(err, clips.ErrUnsupportedInput):
		return "unsupported input"
	case errors.Is(err, render.ErrRenderFailure):
		return "render failure"
	default:
		return "error"
	}
}

var rootCmd = &cobra.Command{
	Use:           "mlggen",
	Short:         "mlggen - MLG remix video generator",
	Long:          "Applies stock MLG remix effects (quick cuts, speed-ups, color punches, zooms, flashes, overlays, airhorns) to your clips and renders a montage.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(guiCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "mlg_output.mp4", "output file")
	renderCmd.Flags().StringVar(&renderIntensity, "intensity", "medium", "effect intensity (low, medium, high)")
	renderCmd.Flags().BoolVar(&renderRandomize, "randomize", false, "randomize effect selection and parameters")
	renderCmd.Flags().Int64Var(&renderSeed, "seed", 0, "random seed for reproducible runs")
	renderCmd.Flags().StringVar(&renderTarget, "target-duration", "", "stop adding shots past this duration (e.g. 12 or 0:30)")
	renderCmd.Flags().StringVar(&renderAssetsDir, "assets-dir", "", "override the assets directory")
}

var (
	renderOutput    string
	renderIntensity string
	renderRandomize bool
	renderSeed      int64
	renderTarget    string
	renderAssetsDir string
)

var renderCmd = &cobra.Command{
	Use:   "render [input videos...]",
	Short: "Compose and render an MLG montage from input clips",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.FromContext(ctx)

		intensity, err := pipeline.ParseIntensity(renderIntensity)
		if err != nil {
			return err
		}

		opts := pipeline.Options{
			Intensity:   intensity,
			Randomize:   renderRandomize,
			MaxWidth:    cfg.Render.MaxWidth,
			MusicVolume: cfg.Render.MusicVolume,
		}
		if cmd.Flags().Changed("seed") {
			seed := renderSeed
			opts.Seed = &seed
		}
		if renderTarget != "" {
			target, err := util.ParseTimestamp(renderTarget)
			if err != nil {
				return fmt.Errorf("%w: %v", effects.ErrInvalidParameter, err)
			}
			opts.TargetDuration = target
		}

		exec, err := ffmpeg.New(log.Logger, cfg.FFmpeg.BinaryPath, cfg.FFmpeg.Threads)
		if err != nil {
			return err
		}

		loaded, err := pipeline.Load(ctx, exec, args)
		if err != nil {
			return err
		}

		assetsDir := cfg.Assets.Dir
		if renderAssetsDir != "" {
			assetsDir = renderAssetsDir
		}
		reg := assets.NewRegistry(assetsDir, cfg.Assets.Files)

		composer := pipeline.NewComposer(log.Logger, reg)
		plan, err := composer.Compose(loaded, opts)
		if err != nil {
			return err
		}

		renderer := render.New(log.Logger, exec)
		err = renderer.Render(ctx, plan, render.Options{
			OutputPath: renderOutput,
			TempDir:    cfg.TempDir,
			Encode: ffmpeg.EncodeSettings{
				CRF:    cfg.Render.CRF,
				Preset: cfg.Render.Preset,
				FPS:    cfg.Render.FPS,
			},
			ProgressFunc: func(p *ffmpeg.Progress) {
				log.Debug().
					Int("frame", p.Frame).
					Str("time", p.Time).
					Str("speed", p.Speed).
					Msg("render progress")
			},
		})
		if err != nil {
			return err
		}

		log.Info().
			Str("output", renderOutput).
			Int("shots", len(plan.Shots)).
			Int64("seed", plan.Seed).
			Msg("montage rendered")

		return nil
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe [input video]",
	Short: "Print metadata for a video file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		exec, err := ffmpeg.New(log.Logger, cfg.FFmpeg.BinaryPath, cfg.FFmpeg.Threads)
		if err != nil {
			return err
		}

		info, err := exec.ProbeVideo(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("%w: %s: %v", clips.ErrUnsupportedInput, args[0], err)
		}

		log.Info().
			Str("file", info.FilePath).
			Dur("duration", info.Duration).
			Int("width", info.Width).
			Int("height", info.Height).
			Float64("fps", info.FPS).
			Str("video_codec", info.VideoCodec).
			Bool("has_audio", info.HasAudio).
			Msg("probe complete")

		return nil
	},
}

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List resolved asset paths and flag missing files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		reg := assets.NewRegistry(cfg.Assets.Dir, cfg.Assets.Files)

		for _, name := range reg.Names() {
			path, err := reg.Path(name)
			if err != nil {
				return err
			}
			if reg.Has(name) {
				log.Info().Str("asset", name).Str("path", path).Msg("ok")
			} else {
				log.Warn().Str("asset", name).Str("path", path).Msg("missing")
			}
		}

		return nil
	},
}

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Start the GUI front end",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		gui.Run(cfg, logging.WithComponent("gui"))
		return nil
	},
}
