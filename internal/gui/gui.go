package gui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/kikiluvv/mlggen/internal/assets"
	"github.com/kikiluvv/mlggen/internal/config"
	"github.com/kikiluvv/mlggen/internal/ffmpeg"
	"github.com/kikiluvv/mlggen/internal/pipeline"
	"github.com/kikiluvv/mlggen/internal/render"
)

// Run starts the GUI front end. It drives the same composer/renderer
// contract as the CLI; rendering runs off the UI goroutine.
func Run(cfg *config.Config, logger zerolog.Logger) {
	myApp := app.NewWithID("mlggen")
	w := myApp.NewWindow("🎺 MLGGen 🎺")
	w.Resize(fyne.NewSize(640, 480))

	var inputs []string

	inputList := widget.NewLabel("No videos added")
	status := widget.NewLabel("")

	intensity := widget.NewSelect([]string{"low", "medium", "high"}, nil)
	intensity.SetSelected("medium")

	randomize := widget.NewCheck("Randomize effects", nil)
	randomize.SetChecked(true)

	seedEntry := widget.NewEntry()
	seedEntry.SetPlaceHolder("seed (blank = not reproducible)")

	outputEntry := widget.NewEntry()
	outputEntry.SetText("mlg_output.mp4")

	refreshInputs := func() {
		if len(inputs) == 0 {
			inputList.SetText("No videos added")
			return
		}
		text := ""
		for _, p := range inputs {
			text += p + "\n"
		}
		inputList.SetText(text)
	}

	addButton := widget.NewButton("Add video", func() {
		fd := dialog.NewFileOpen(func(ur fyne.URIReadCloser, err error) {
			if ur == nil {
				return
			}
			inputs = append(inputs, ur.URI().Path())
			refreshInputs()
		}, w)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".mp4", ".mov", ".mkv", ".avi"}))
		fd.Show()
	})

	clearButton := widget.NewButton("Clear list", func() {
		inputs = nil
		refreshInputs()
	})

	generateButton := widget.NewButton("Generate MLG", func() {
		if len(inputs) == 0 {
			dialog.ShowInformation("No input", "Add at least one video first", w)
			return
		}

		opts := pipeline.Options{
			Randomize:      randomize.Checked,
			TargetDuration: 12 * time.Second,
			MaxWidth:       cfg.Render.MaxWidth,
			MusicVolume:    cfg.Render.MusicVolume,
		}
		opts.Intensity, _ = pipeline.ParseIntensity(intensity.Selected)
		if s := seedEntry.Text; s != "" {
			seed, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid seed: %q", s), w)
				return
			}
			opts.Seed = &seed
		}

		paths := append([]string(nil), inputs...)
		output := outputEntry.Text
		status.SetText("Rendering...")

		go func() {
			err := generate(cfg, logger, paths, output, opts)
			fyne.Do(func() {
				if err != nil {
					status.SetText("Error: " + err.Error())
					dialog.ShowError(err, w)
					return
				}
				status.SetText("Done! Saved to: " + output)
				dialog.ShowInformation("Done", "MLG video saved to:\n"+output, w)
			})
		}()
	})

	w.SetContent(container.NewVBox(
		container.NewHBox(addButton, clearButton),
		widget.NewLabel("Selected videos:"),
		inputList,
		randomize,
		container.NewHBox(widget.NewLabel("Intensity:"), intensity),
		container.NewHBox(widget.NewLabel("Seed:"), seedEntry),
		container.NewHBox(widget.NewLabel("Output:"), outputEntry),
		status,
		generateButton,
	))

	w.ShowAndRun()
}

// generate runs the full load → compose → render chain
func generate(cfg *config.Config, logger zerolog.Logger, paths []string, output string, opts pipeline.Options) error {
	ctx := context.Background()

	exec, err := ffmpeg.New(logger, cfg.FFmpeg.BinaryPath, cfg.FFmpeg.Threads)
	if err != nil {
		return err
	}

	loaded, err := pipeline.Load(ctx, exec, paths)
	if err != nil {
		return err
	}

	reg := assets.NewRegistry(cfg.Assets.Dir, cfg.Assets.Files)
	composer := pipeline.NewComposer(logger, reg)

	plan, err := composer.Compose(loaded, opts)
	if err != nil {
		return err
	}

	renderer := render.New(logger, exec)
	return renderer.Render(ctx, plan, render.Options{
		OutputPath: output,
		TempDir:    cfg.TempDir,
		Encode: ffmpeg.EncodeSettings{
			CRF:    cfg.Render.CRF,
			Preset: cfg.Render.Preset,
			FPS:    cfg.Render.FPS,
		},
	})
}
