package main

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/kacebover/imageshrink/gui/controller"
	"github.com/kacebover/imageshrink/logging"
	"github.com/kacebover/imageshrink/resizer"
)

// ResizerGUI owns the application windows. All fields are touched on the
// Fyne main goroutine only.
type ResizerGUI struct {
	app    fyne.App
	ctrl   *controller.ResizeController
	logger *logging.Logger
	mode   controller.Mode

	mainWindow  fyne.Window
	mainVisible bool
	aboutWindow fyne.Window
	devWindow   fyne.Window

	// Main form
	sourceLabel    *widget.Label
	recentSelect   *widget.Select
	widthEntry     *widget.Entry
	heightEntry    *widget.Entry
	resizeButton   *widget.Button
	settingsButton *widget.Button
	statusLabel    *widget.Label
	destLabel      *widget.Label
	preview        *canvas.Image
	sourcePath     string

	// Developer panel
	devLog    *widget.TextGrid
	devScroll *container.Scroll
}

// NewResizerGUI creates the GUI around an existing app and controller
func NewResizerGUI(a fyne.App, ctrl *controller.ResizeController, logger *logging.Logger, mode controller.Mode) *ResizerGUI {
	sg := &ResizerGUI{
		app:    a,
		ctrl:   ctrl,
		logger: logger,
		mode:   mode,
	}

	a.Lifecycle().SetOnEnteredForeground(sg.onActivate)
	return sg
}

// openMainSurface shows the main window, creating it when needed
func (sg *ResizerGUI) openMainSurface() {
	if sg.mainWindow != nil {
		sg.mainWindow.Show()
		sg.mainWindow.RequestFocus()
		sg.mainVisible = true
		sg.ctrl.AttachSurface(sg)
		return
	}

	spec := controller.MainWindowSpec(sg.mode)
	w := sg.app.NewWindow(spec.Title)
	w.Resize(fyne.NewSize(spec.Width, spec.Height))
	w.SetFixedSize(!spec.Resizable)
	w.CenterOnScreen()

	sg.mainWindow = w
	w.SetContent(sg.buildMainContent())
	w.SetMainMenu(sg.buildMainMenu(controller.BuildMenu(sg.mode, controller.AppName)))

	if sg.mode.IsMac() {
		w.SetCloseIntercept(sg.closeMainSurface)
	}
	w.SetOnClosed(sg.onMainClosed)

	sg.ctrl.AttachSurface(sg)
	w.Show()
	sg.mainVisible = true

	if sg.mode.Dev {
		sg.openDevPanel()
	}

	sg.logger.Debug().Bool("dev", sg.mode.Dev).Str("platform", sg.mode.Platform).Msg("Main window opened")
}

// closeMainSurface closes the main window. On macOS the window is only
// hidden so the app stays resident.
func (sg *ResizerGUI) closeMainSurface() {
	if sg.mainWindow == nil {
		return
	}
	if !sg.mode.IsMac() {
		sg.mainWindow.Close()
		return
	}

	sg.ctrl.DetachSurface(sg)
	sg.mainWindow.Hide()
	sg.mainVisible = false
	sg.closeDevPanel()
}

func (sg *ResizerGUI) onMainClosed() {
	sg.ctrl.DetachSurface(sg)
	sg.mainWindow = nil
	sg.mainVisible = false
	sg.closeDevPanel()
	sg.quitIfIdle()
}

// onActivate brings the main window back on macOS when nothing is shown
func (sg *ResizerGUI) onActivate() {
	if controller.ShouldReopenMain(sg.mode.Platform, sg.openSurfaces()) {
		sg.openMainSurface()
	}
}

func (sg *ResizerGUI) openSurfaces() int {
	n := 0
	if sg.mainWindow != nil && sg.mainVisible {
		n++
	}
	if sg.aboutWindow != nil {
		n++
	}
	if sg.devWindow != nil {
		n++
	}
	return n
}

func (sg *ResizerGUI) quitIfIdle() {
	if controller.QuitWhenAllClosed(sg.mode.Platform) && sg.openSurfaces() == 0 {
		sg.app.Quit()
	}
}

func (sg *ResizerGUI) buildMainContent() fyne.CanvasObject {
	title := canvas.NewText(controller.AppName, theme.Color(theme.ColorNameForeground))
	title.TextSize = 24
	title.TextStyle.Bold = true

	subtitle := widget.NewLabel("Pick an image, choose its new size, and a resized copy is saved to the output folder.")
	subtitle.Wrapping = fyne.TextWrapWord

	sg.preview = canvas.NewImageFromResource(theme.FileImageIcon())
	sg.preview.FillMode = canvas.ImageFillContain
	sg.preview.SetMinSize(fyne.NewSize(200, 160))

	sg.sourceLabel = widget.NewLabel("No image selected")
	sg.sourceLabel.Truncation = fyne.TextTruncateEllipsis

	browseBtn := widget.NewButtonWithIcon("Select Image...", theme.FolderOpenIcon(), sg.onBrowse)
	browseBtn.Importance = widget.MediumImportance

	sg.recentSelect = widget.NewSelect(sg.ctrl.RecentFiles(), sg.onRecentSelected)
	sg.recentSelect.PlaceHolder = "Recent images"

	sg.widthEntry = widget.NewEntry()
	sg.widthEntry.SetPlaceHolder("Width")
	sg.widthEntry.Validator = dimensionValidator

	sg.heightEntry = widget.NewEntry()
	sg.heightEntry.SetPlaceHolder("Height")
	sg.heightEntry.Validator = dimensionValidator

	form := widget.NewForm(
		widget.NewFormItem("Width", sg.widthEntry),
		widget.NewFormItem("Height", sg.heightEntry),
	)

	sg.resizeButton = widget.NewButtonWithIcon("Resize", theme.ViewRestoreIcon(), sg.onResize)
	sg.resizeButton.Importance = widget.HighImportance

	sg.settingsButton = widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), sg.showSettings)

	sg.statusLabel = widget.NewLabel("Ready")
	sg.statusLabel.Wrapping = fyne.TextWrapBreak

	sg.destLabel = widget.NewLabel(destinationText(sg.ctrl.Destination()))
	sg.destLabel.Wrapping = fyne.TextWrapBreak
	sg.destLabel.TextStyle.Italic = true

	content := container.NewVBox(
		title,
		subtitle,
		widget.NewSeparator(),
		container.NewCenter(sg.preview),
		sg.sourceLabel,
		container.NewGridWithColumns(2, browseBtn, sg.recentSelect),
		form,
		container.NewBorder(nil, nil, nil, sg.settingsButton, sg.resizeButton),
		widget.NewSeparator(),
		sg.statusLabel,
		layout.NewSpacer(),
		sg.destLabel,
	)

	return container.NewPadded(container.NewScroll(content))
}

func dimensionValidator(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

func (sg *ResizerGUI) onBrowse() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, sg.mainWindow)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		sg.setSource(path)
	}, sg.mainWindow)

	fd.SetFilter(storage.NewExtensionFileFilter(dialogExtensions()))

	if dir := sg.ctrl.GetConfig().LastSourceDir; dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Show()
}

// dialogExtensions returns the image extensions in both cases
func dialogExtensions() []string {
	exts := resizer.SupportedExtensions()
	out := make([]string, 0, len(exts)*2)
	for _, e := range exts {
		out = append(out, e, strings.ToUpper(e))
	}
	return out
}

// setSource loads the picked image and prefills its current size
func (sg *ResizerGUI) setSource(path string) {
	w, h, err := resizer.ImageSize(path)
	if err != nil {
		sg.logger.Warn().Err(err).Str("source", path).Msg("Cannot read image header")
		dialog.ShowError(err, sg.mainWindow)
		return
	}

	sg.sourcePath = path
	sg.sourceLabel.SetText(filepath.Base(path))
	sg.widthEntry.SetText(strconv.Itoa(w))
	sg.heightEntry.SetText(strconv.Itoa(h))
	sg.statusLabel.SetText(fmt.Sprintf("Original size: %d x %d", w, h))

	sg.preview.File = path
	sg.preview.Resource = nil
	sg.preview.Refresh()
}

func (sg *ResizerGUI) onResize() {
	if sg.sourcePath == "" {
		dialog.ShowError(fmt.Errorf("please select an image first"), sg.mainWindow)
		return
	}

	if err := sg.ctrl.RequestResize(sg.sourcePath, sg.widthEntry.Text, sg.heightEntry.Text); err != nil {
		dialog.ShowError(err, sg.mainWindow)
		return
	}
	sg.statusLabel.SetText("Resizing " + filepath.Base(sg.sourcePath) + "...")
	sg.refreshRecent()
}

func destinationText(dest string) string {
	return "Output folder: " + dest
}

func (sg *ResizerGUI) onRecentSelected(path string) {
	if path == "" {
		return
	}
	sg.setSource(path)
}

// refreshRecent reloads the recent images list from the config
func (sg *ResizerGUI) refreshRecent() {
	if sg.recentSelect == nil {
		return
	}
	sg.recentSelect.SetOptions(sg.ctrl.RecentFiles())
}

func (sg *ResizerGUI) showSettings() {
	cfg := sg.ctrl.GetConfig()

	destEntry := widget.NewEntry()
	destEntry.SetText(cfg.DestinationDir)
	destBrowse := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
			if err != nil || dir == nil {
				return
			}
			destEntry.SetText(dir.Path())
		}, sg.mainWindow)
	})

	filterNames := make([]string, 0, len(resizer.Filters()))
	for _, f := range resizer.Filters() {
		filterNames = append(filterNames, string(f))
	}
	filterSelect := widget.NewSelect(filterNames, nil)
	filterSelect.SetSelected(cfg.Filter)

	qualityEntry := widget.NewEntry()
	qualityEntry.SetText(strconv.Itoa(cfg.JPEGQuality))

	openFolder := widget.NewCheck("Open the output folder after resizing", nil)
	openFolder.SetChecked(cfg.OpenFolderAfterResize)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Output folder", container.NewBorder(nil, nil, nil, destBrowse, destEntry)),
		widget.NewFormItem("Filter", filterSelect),
		widget.NewFormItem("JPEG quality", qualityEntry),
		widget.NewFormItem("", openFolder),
	}

	dialog.ShowForm("Settings", "Save", "Cancel", formItems, func(confirm bool) {
		if !confirm {
			return
		}

		updated, err := settingsFromForm(cfg, destEntry.Text, filterSelect.Selected, qualityEntry.Text, openFolder.Checked)
		if err != nil {
			dialog.ShowError(err, sg.mainWindow)
			return
		}
		if err := sg.applySettings(updated); err != nil {
			sg.logger.Warnf("Could not save settings: %v", err)
			dialog.ShowError(err, sg.mainWindow)
			return
		}
		sg.statusLabel.SetText("Settings saved")
	}, sg.mainWindow)
}

// settingsFromForm applies the settings form values to a copy of base
func settingsFromForm(base *controller.AppConfig, dest, filter, quality string, openFolder bool) (*controller.AppConfig, error) {
	cfg := base.Clone()

	dest = strings.TrimSpace(dest)
	if dest == "" {
		return nil, fmt.Errorf("output folder must not be empty")
	}
	cfg.DestinationDir = dest

	f, err := resizer.ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	cfg.Filter = string(f)

	q, err := strconv.Atoi(strings.TrimSpace(quality))
	if err != nil || q < 1 || q > 100 {
		return nil, fmt.Errorf("JPEG quality must be a whole number from 1 to 100")
	}
	cfg.JPEGQuality = q

	cfg.OpenFolderAfterResize = openFolder
	return cfg, nil
}

// applySettings hands the new config to the controller and refreshes the
// parts of the main window that show it.
func (sg *ResizerGUI) applySettings(cfg *controller.AppConfig) error {
	err := sg.ctrl.UpdateConfig(cfg)
	if sg.destLabel != nil {
		sg.destLabel.SetText(destinationText(sg.ctrl.Destination()))
	}
	return err
}

// resetForm clears the current selection
func (sg *ResizerGUI) resetForm() {
	if sg.mainWindow == nil {
		return
	}
	sg.sourcePath = ""
	sg.sourceLabel.SetText("No image selected")
	sg.widthEntry.SetText("")
	sg.heightEntry.SetText("")
	sg.statusLabel.SetText("Ready")
	sg.recentSelect.ClearSelected()
	sg.preview.File = ""
	sg.preview.Resource = theme.FileImageIcon()
	sg.preview.Refresh()
}

// rebuildMain recreates the main window content from scratch
func (sg *ResizerGUI) rebuildMain() {
	if sg.mainWindow == nil {
		return
	}
	sg.sourcePath = ""
	sg.mainWindow.SetContent(sg.buildMainContent())
	sg.logger.Debug().Msg("Main window content rebuilt")
}

// ShowCompleted reports a finished resize in the main window
func (sg *ResizerGUI) ShowCompleted(res resizer.Result) {
	fyne.Do(func() {
		if sg.statusLabel == nil {
			return
		}
		sg.statusLabel.SetText(formatCompleted(res))
	})
}

// ShowFailed reports a failed resize in the main window
func (sg *ResizerGUI) ShowFailed(res resizer.Result) {
	fyne.Do(func() {
		if sg.statusLabel != nil {
			sg.statusLabel.SetText("Resize failed: " + filepath.Base(res.Request.SourcePath))
		}
		if sg.mainWindow != nil {
			dialog.ShowError(res.Err, sg.mainWindow)
		}
	})
}

func formatCompleted(res resizer.Result) string {
	return fmt.Sprintf("Saved %s\n%d x %d, %s in %s",
		res.OutputPath,
		res.Width, res.Height,
		controller.FormatFileSize(res.Bytes),
		res.Duration.Round(time.Millisecond),
	)
}

// openInfoSurface shows the about window, focusing it if already open
func (sg *ResizerGUI) openInfoSurface() {
	if sg.aboutWindow != nil {
		sg.aboutWindow.RequestFocus()
		return
	}

	spec := controller.InfoWindowSpec()
	w := sg.app.NewWindow(spec.Title)
	w.Resize(fyne.NewSize(spec.Width, spec.Height))
	w.SetFixedSize(!spec.Resizable)

	about := widget.NewRichTextFromMarkdown(aboutMarkdown(sg.ctrl.Destination()))
	about.Wrapping = fyne.TextWrapWord
	w.SetContent(container.NewPadded(about))

	w.SetOnClosed(func() {
		sg.aboutWindow = nil
		sg.quitIfIdle()
	})

	sg.aboutWindow = w
	w.Show()
}

func aboutMarkdown(dest string) string {
	return fmt.Sprintf("## %s\n\nVersion %s\n\nResize an image to an exact width and height.\n\nCopies are saved to:\n\n`%s`",
		controller.AppName, controller.AppVersion, dest)
}

// openDevPanel shows recent log lines
func (sg *ResizerGUI) openDevPanel() {
	ring := sg.logger.Ring()
	if sg.devWindow != nil || ring == nil {
		return
	}

	spec := controller.DevWindowSpec()
	w := sg.app.NewWindow(spec.Title)
	w.Resize(fyne.NewSize(spec.Width, spec.Height))

	sg.devLog = widget.NewTextGrid()
	sg.devLog.SetText(strings.Join(ring.Lines(), "\n"))
	sg.devScroll = container.NewScroll(sg.devLog)

	clearBtn := widget.NewButton("Clear", func() {
		ring.Clear()
		sg.devLog.SetText("")
	})
	clearBtn.Importance = widget.LowImportance

	w.SetContent(container.NewBorder(nil, container.NewHBox(layout.NewSpacer(), clearBtn), nil, nil, sg.devScroll))

	ring.SetOnAppend(func(string) {
		fyne.Do(func() {
			if sg.devLog == nil {
				return
			}
			sg.devLog.SetText(strings.Join(ring.Lines(), "\n"))
			sg.devScroll.ScrollToBottom()
		})
	})

	w.SetOnClosed(func() {
		ring.SetOnAppend(nil)
		sg.devWindow = nil
		sg.devLog = nil
		sg.devScroll = nil
		sg.quitIfIdle()
	})

	sg.devWindow = w
	w.Show()
	sg.devScroll.ScrollToBottom()
}

func (sg *ResizerGUI) closeDevPanel() {
	if sg.devWindow != nil {
		sg.devWindow.Close()
	}
}

func (sg *ResizerGUI) toggleDevPanel() {
	if sg.devWindow != nil {
		sg.closeDevPanel()
		return
	}
	sg.openDevPanel()
}

func (sg *ResizerGUI) toggleFullScreen() {
	if sg.mainWindow != nil {
		sg.mainWindow.SetFullScreen(!sg.mainWindow.FullScreen())
	}
}

// roleAction maps a menu role to its handler. Roles Fyne cannot perform
// return nil and are shown disabled.
func (sg *ResizerGUI) roleAction(role controller.Role) func() {
	switch role {
	case controller.RoleAbout:
		return sg.openInfoSurface
	case controller.RoleReload:
		return sg.resetForm
	case controller.RoleForceReload:
		return sg.rebuildMain
	case controller.RoleQuit:
		return func() { sg.app.Quit() }
	case controller.RoleToggleFullScreen:
		return sg.toggleFullScreen
	case controller.RoleClose:
		return sg.closeMainSurface
	case controller.RoleToggleDevTools:
		return sg.toggleDevPanel
	default:
		return nil
	}
}

func (sg *ResizerGUI) buildMainMenu(sections []controller.MenuSection) *fyne.MainMenu {
	menus := make([]*fyne.Menu, 0, len(sections))

	for _, section := range sections {
		items := make([]*fyne.MenuItem, 0, len(section.Items))
		for _, entry := range section.Items {
			if entry.Separator {
				items = append(items, fyne.NewMenuItemSeparator())
				continue
			}

			action := sg.roleAction(entry.Role)
			item := fyne.NewMenuItem(entry.DisplayLabel(), action)
			if action == nil {
				item.Disabled = true
			}
			if entry.Role == controller.RoleQuit {
				item.IsQuit = true
			}
			items = append(items, item)
		}
		menus = append(menus, fyne.NewMenu(section.Label, items...))
	}

	return fyne.NewMainMenu(menus...)
}

// Run opens the main window and blocks until the app quits
func (sg *ResizerGUI) Run() {
	sg.openMainSurface()
	sg.app.Run()
	sg.ctrl.Wait()
}

func main() {
	a := app.NewWithID(controller.AppID)

	ring := logging.NewRing(logging.DefaultRingSize)
	logger := logging.NewLogger("gui", ring)

	mode := controller.DetectMode(runtime.GOOS, !a.Metadata().Release)
	logging.SetVerbose(mode.Dev)

	ctrl := controller.NewResizeController(logger, resizer.SystemOpener{})

	gui := NewResizerGUI(a, ctrl, logger, mode)
	gui.Run()
}
