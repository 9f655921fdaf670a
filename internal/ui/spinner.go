package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner animates a status line on Err while a slow external call runs.
type Spinner struct {
	msg  string
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Spin starts a spinner; callers must Stop it before printing anything else.
func Spin(msg string) *Spinner {
	s := &Spinner{msg: msg, stop: make(chan struct{}), done: make(chan struct{})}
	go s.run(spinner.Dot)
	return s
}

func (s *Spinner) run(style spinner.Spinner) {
	defer close(s.done)

	ticker := time.NewTicker(style.FPS)
	defer ticker.Stop()

	for i := 0; ; i++ {
		frame := style.Frames[i%len(style.Frames)]
		fmt.Fprintf(Err, "\r%s %s", accentStyle.Render(frame), s.msg)
		select {
		case <-s.stop:
			fmt.Fprint(Err, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop clears the spinner line and waits for the animation to finish.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}
