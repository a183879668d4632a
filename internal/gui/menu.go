// Menu handler for application actions
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"mdna-viewer/internal/io"
)

// MenuHandler handles menu actions
type MenuHandler struct {
	window fyne.Window
	logger *logrus.Logger

	onPairSelected  func(cy3Path, cy5Path string)
	onClear         func()
	onViewChanged   func(string)
	onToggleCoupled func()
	onResetZoom     func()
}

func NewMenuHandler(window fyne.Window, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{
		window: window,
		logger: logger,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Cy3/Cy5 Pair...", mh.OpenPair),
		fyne.NewMenuItem("Clear All", func() {
			if mh.onClear != nil {
				mh.onClear()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.window.Close()
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Split View", func() { mh.view(ViewSplit) }),
		fyne.NewMenuItem("Combined View", func() { mh.view(ViewCombined) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Coupled Zoom", func() {
			if mh.onToggleCoupled != nil {
				mh.onToggleCoupled()
			}
		}),
		fyne.NewMenuItem("Reset Zoom", func() {
			if mh.onResetZoom != nil {
				mh.onResetZoom()
			}
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, viewMenu, helpMenu)
}

func (mh *MenuHandler) view(mode string) {
	if mh.onViewChanged != nil {
		mh.onViewChanged(mode)
	}
}

// OpenPair asks for the Cy3 file, then the Cy5 file. Cancelling either
// dialog leaves the session untouched.
func (mh *MenuHandler) OpenPair() {
	mh.logger.Info("Opening file dialog for Cy3 image")
	mh.chooseFile("Open Cy3", func(cy3Path string) {
		mh.logger.WithField("cy3", cy3Path).Info("Opening file dialog for Cy5 image")
		mh.chooseFile("Open Cy5", func(cy5Path string) {
			if mh.onPairSelected != nil {
				mh.onPairSelected(cy3Path, cy5Path)
			}
		})
	})
}

func (mh *MenuHandler) chooseFile(confirm string, onChosen func(string)) {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			mh.logger.Info("File selection cancelled")
			return
		}
		path := reader.URI().Path()
		reader.Close()

		onChosen(path)
	}, mh.window)

	fileDialog.SetConfirmText(confirm)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.SupportedExtensions()))
	fileDialog.Show()
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("mDNA Viewer"),
		widget.NewSeparator(),
		widget.NewLabel("Paired 16-bit Cy3/Cy5 fluorescence images"),
		widget.NewLabel("with false-colour rendering, additive overlay,"),
		widget.NewLabel("contrast windowing and coupled zoom."),
		widget.NewSeparator(),
		widget.NewLabel("Scroll to zoom, drag to pan."),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(400, 260))
	aboutDialog.Show()
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.WithError(err).Error(title)
	dialog.ShowError(err, mh.window)
}

func (mh *MenuHandler) SetCallbacks(
	onPairSelected func(string, string),
	onClear func(),
	onViewChanged func(string),
	onToggleCoupled func(),
	onResetZoom func(),
) {
	mh.onPairSelected = onPairSelected
	mh.onClear = onClear
	mh.onViewChanged = onViewChanged
	mh.onToggleCoupled = onToggleCoupled
	mh.onResetZoom = onResetZoom
}
