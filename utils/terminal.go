package utils

import "golang.org/x/sys/unix"

// SetRawMode switches the terminal behind fd into raw mode: no echo, no line
// buffering, no signal keys. It returns the previous settings so the caller
// can restore them on exit.
func SetRawMode(fd uintptr) (*unix.Termios, error) {
	terminalSettings, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	if err != nil {
		return nil, err
	}
	savedTerminalSettings := *terminalSettings
	terminalSettings.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	terminalSettings.Oflag &^= unix.OPOST
	terminalSettings.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	terminalSettings.Cflag &^= unix.CSIZE | unix.PARENB
	terminalSettings.Cflag |= unix.CS8
	terminalSettings.Oflag |= unix.ONLCR

	if err := unix.IoctlSetTermios(int(fd), unix.TCSETS, terminalSettings); err != nil {
		return nil, err
	}
	return &savedTerminalSettings, nil
}

// RestoreMode reinstates terminal settings saved by SetRawMode.
func RestoreMode(fd uintptr, saved *unix.Termios) {
	_ = unix.IoctlSetTermios(int(fd), unix.TCSETS, saved)
}
