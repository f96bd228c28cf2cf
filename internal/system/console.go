package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// TakeConsole puts the VT into graphics mode and hides the cursor. The
// returned func undoes both. Failures are logged and otherwise ignored,
// since the face still renders without a VT.
func TakeConsole(l logger) (restore func()) {
	if l == nil {
		l = nopLogger{}
	}
	if err := SetGraphicsMode(); err != nil {
		l.Errorf("tty", "KD_GRAPHICS failed: %v", err)
	} else {
		l.Infof("tty", "KD_GRAPHICS set")
	}
	if err := HideCursor(); err != nil {
		l.Errorf("tty", "hide cursor failed: %v", err)
	}
	return func() {
		if err := ShowCursor(); err != nil {
			l.Errorf("tty", "show cursor failed: %v", err)
		}
		if err := RestoreTextMode(); err != nil {
			l.Errorf("tty", "KD_TEXT failed: %v", err)
		} else {
			l.Infof("tty", "KD_TEXT set")
		}
	}
}

type nopLogger struct{}

func (nopLogger) Infof(string, string, ...interface{})  {}
func (nopLogger) Errorf(string, string, ...interface{}) {}
