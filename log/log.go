package log

import (
	// Stdlib
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	// Vendor
	"github.com/fatih/color"
	"github.com/shiena/ansicolor"
)

type Level uint32

const (
	Trace Level = iota
	Debug
	Verbose
	Info
	Off
)

var levelStrings = map[Level]string{
	Trace:   "trace",
	Debug:   "debug",
	Verbose: "verbose",
	Info:    "info",
	Off:     "off",
}

func LevelStrings() []string {
	return []string{"trace", "debug", "verbose", "info", "off"}
}

func (level Level) String() string {
	return levelStrings[level]
}

func StringToLevel(levelString string) (Level, error) {
	for level, str := range levelStrings {
		if str == levelString {
			return level, nil
		}
	}
	return 0, fmt.Errorf("invalid log level: %v", levelString)
}

func MustStringToLevel(levelString string) Level {
	level, err := StringToLevel(levelString)
	if err != nil {
		panic(err)
	}
	return level
}

var (
	v     = uint32(Info)
	mutex sync.Mutex

	output io.Writer = ansicolor.NewAnsiColorWriter(os.Stderr)
)

var (
	runPrefix      = color.New(color.FgCyan).SprintFunc()
	skipPrefix     = color.New(color.FgWhite).SprintFunc()
	okPrefix       = color.New(color.FgGreen).SprintFunc()
	warnPrefix     = color.New(color.FgYellow).SprintFunc()
	failPrefix     = color.New(color.FgRed).SprintFunc()
	rollbackPrefix = color.New(color.FgMagenta).SprintFunc()
	logPrefix      = color.New(color.FgBlue).SprintFunc()
)

// SetV sets the global verbosity level.
func SetV(level Level) {
	atomic.StoreUint32(&v, uint32(level))
}

// SetOutput redirects all log output. It returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mutex.Lock()
	defer mutex.Unlock()
	prev := output
	output = w
	return prev
}

// Logger writes messages when enabled for the current verbosity level.
type Logger bool

func V(level Level) Logger {
	return Logger(atomic.LoadUint32(&v) <= uint32(level))
}

func (l Logger) Lock() {
	mutex.Lock()
}

func (l Logger) Unlock() {
	mutex.Unlock()
}

func (l Logger) printf(prefix, format string, args ...interface{}) {
	if !l {
		return
	}
	fmt.Fprint(output, prefix)
	fmt.Fprintf(output, format, args...)
}

func (l Logger) tagged(tag func(a ...interface{}) string, label, msg string) {
	l.printf(tag(fmt.Sprintf("%-11s", label)), "%v\n", msg)
}

func (l Logger) UnsafeLog(msg string) {
	l.tagged(logPrefix, "[LOG]", msg)
}

func (l Logger) UnsafeRun(msg string) {
	l.tagged(runPrefix, "[RUN]", msg)
}

func (l Logger) UnsafeSkip(msg string) {
	l.tagged(skipPrefix, "[SKIP]", msg)
}

func (l Logger) UnsafeOk(msg string) {
	l.tagged(okPrefix, "[OK]", msg)
}

func (l Logger) UnsafeWarn(msg string) {
	l.tagged(warnPrefix, "[WARNING]", msg)
}

func (l Logger) UnsafeFail(msg string) {
	l.tagged(failPrefix, "[FAIL]", msg)
}

func (l Logger) UnsafeRollback(msg string) {
	l.tagged(rollbackPrefix, "[ROLLBACK]", msg)
}

// UnsafeNewLine prints a message aligned with the tagged lines.
func (l Logger) UnsafeNewLine(msg string) {
	l.printf("", "%v%v\n", strings.Repeat(" ", 11), msg)
}

// UnsafeStderr prints the captured stderr output of a failed command.
func (l Logger) UnsafeStderr(stderr string) {
	if stderr == "" {
		return
	}
	l.printf("", "%v", "<<<<< stderr\n")
	l.printf("", "%v", stderr)
	if !strings.HasSuffix(stderr, "\n") {
		l.printf("", "\n")
	}
	l.printf("", "%v", ">>>>> stderr\n")
}

func (l Logger) UnsafePrint(args ...interface{}) {
	l.printf("", "%v", fmt.Sprint(args...))
}

func (l Logger) UnsafePrintf(format string, args ...interface{}) {
	l.printf("", format, args...)
}

func (l Logger) UnsafePrintln(args ...interface{}) {
	l.printf("", "%v", fmt.Sprintln(args...))
}

func (l Logger) Log(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeLog(msg)
}

func (l Logger) Run(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeRun(msg)
}

func (l Logger) Skip(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeSkip(msg)
}

func (l Logger) Ok(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeOk(msg)
}

func (l Logger) Warn(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeWarn(msg)
}

func (l Logger) Fail(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeFail(msg)
}

func (l Logger) Rollback(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeRollback(msg)
}

func (l Logger) NewLine(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeNewLine(msg)
}

func (l Logger) Print(args ...interface{}) {
	l.Lock()
	defer l.Unlock()
	l.UnsafePrint(args...)
}

func (l Logger) Printf(format string, args ...interface{}) {
	l.Lock()
	defer l.Unlock()
	l.UnsafePrintf(format, args...)
}

func (l Logger) Println(args ...interface{}) {
	l.Lock()
	defer l.Unlock()
	l.UnsafePrintln(args...)
}

// Package-level shortcuts logging at the Info level.

func Log(msg string) {
	V(Info).Log(msg)
}

func Run(msg string) {
	V(Info).Run(msg)
}

func Skip(msg string) {
	V(Info).Skip(msg)
}

func Ok(msg string) {
	V(Info).Ok(msg)
}

func Warn(msg string) {
	V(Info).Warn(msg)
}

func Fail(msg string) {
	V(Info).Fail(msg)
}

func Rollback(msg string) {
	V(Info).Rollback(msg)
}

func NewLine(msg string) {
	V(Info).NewLine(msg)
}

func Print(args ...interface{}) {
	V(Info).Print(args...)
}

func Printf(format string, args ...interface{}) {
	V(Info).Printf(format, args...)
}

func Println(args ...interface{}) {
	V(Info).Println(args...)
}
