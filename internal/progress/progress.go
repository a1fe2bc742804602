// Package progress reports the sample passes of the leveler, either as a
// redrawn terminal bar or as periodic log lines.
package progress

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/decred/slog"
)

const (
	barWidth      = 50
	printInterval = time.Second
)

// Printer draws a progress bar with percentage and ETA, redrawn at most
// once per percent or per second. It is not safe for concurrent use.
type Printer struct {
	w     io.Writer
	label string
	now   func() time.Time

	total   int64
	value   int64
	start   time.Time
	last    time.Time
	lastPct int
}

// NewPrinter returns a Printer writing to w. label, if set, precedes the bar.
func NewPrinter(w io.Writer, label string) *Printer {
	return &Printer{w: w, label: label, now: time.Now}
}

// Reset starts a new pass of total units.
func (p *Printer) Reset(total int64) {
	p.total = total
	p.value = 0
	p.start = p.now()
	p.last = p.start
	p.lastPct = 0
}

// Advance adds n units and redraws when due.
func (p *Printer) Advance(n int64) {
	p.value += n
	p.draw(false)
}

// Finish draws the completed bar and ends the line.
func (p *Printer) Finish() {
	p.value = p.total
	p.draw(true)
	fmt.Fprintln(p.w)
}

func (p *Printer) draw(force bool) {
	now := p.now()
	pct := percent(p.value, p.total)
	if !force && now.Sub(p.last) < printInterval && pct-p.lastPct < 1 {
		return
	}

	var sb strings.Builder
	sb.WriteByte('\r')
	if p.label != "" {
		sb.WriteString(p.label)
		sb.WriteByte(' ')
	}
	sb.WriteString(Bar(pct, barWidth))
	fmt.Fprintf(&sb, " %d%%", pct)
	if pct > 0 && pct < 100 {
		sb.WriteString(" ETA: ")
		sb.WriteString(FormatETA(eta(now.Sub(p.start), pct)))
	}
	io.WriteString(p.w, sb.String())

	p.lastPct = pct
	p.last = now
}

// Bar renders pct as "[====>     ]" of the given inner width.
func Bar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100

	var sb strings.Builder
	sb.Grow(width + 2)
	sb.WriteByte('[')
	if filled > 0 {
		sb.WriteString(strings.Repeat("=", filled-1))
		sb.WriteByte('>')
	}
	sb.WriteString(strings.Repeat(" ", width-filled))
	sb.WriteByte(']')
	return sb.String()
}

// FormatETA renders d as mm:ss, saturating at 99:59.
func FormatETA(d time.Duration) string {
	secs := int64(d.Round(time.Second) / time.Second)
	secs = min(max(secs, 0), 99*60+59)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func percent(value, total int64) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(100 * float64(min(value, total)) / float64(total)))
}

func eta(elapsed time.Duration, pct int) time.Duration {
	return elapsed * time.Duration(100-pct) / time.Duration(pct)
}

// Logger reports progress as log lines at every step percent. It is safe
// for concurrent use, so one Logger may be shared by parallel channels.
type Logger struct {
	log   slog.Logger
	label string
	step  int
	now   func() time.Time

	mtx   sync.Mutex
	pass  int
	total int64
	value int64
	next  int
	start time.Time
}

// NewLogger returns a Logger that logs through log every step percent.
func NewLogger(log slog.Logger, label string, step int) *Logger {
	if step <= 0 || step > 100 {
		step = 10
	}
	return &Logger{log: log, label: label, step: step, now: time.Now}
}

// Reset starts a new pass of total units.
func (l *Logger) Reset(total int64) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.pass++
	l.total = total
	l.value = 0
	l.next = l.step
	l.start = l.now()
}

// Advance adds n units and logs each milestone crossed.
func (l *Logger) Advance(n int64) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.value += n
	pct := percent(l.value, l.total)
	if pct < l.next || pct >= 100 {
		return
	}
	l.log.Infof("%s pass %d: %d%% ETA %s", l.label, l.pass, pct,
		FormatETA(eta(l.now().Sub(l.start), pct)))
	for l.next <= pct {
		l.next += l.step
	}
}

// Finish logs the pass duration.
func (l *Logger) Finish() {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.log.Debugf("%s pass %d: done in %s", l.label, l.pass,
		l.now().Sub(l.start).Round(time.Millisecond))
}
