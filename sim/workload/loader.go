package workload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/viant/parsly"

	"github.com/inference-sim/rrsim/sim"
)

// Format selects a process file parser.
type Format string

const (
	FormatAuto Format = ""     // pick from the file extension
	FormatText Format = "text" // count followed by pid/arrival/burst triples
	FormatYAML Format = "yaml" // WorkloadSpec
)

// IsValidFormat returns true if the given name is a recognized format.
func IsValidFormat(name string) bool {
	switch Format(name) {
	case FormatAuto, FormatText, FormatYAML:
		return true
	}
	return false
}

// DetectFormat maps .yaml/.yml files to FormatYAML and anything else to FormatText.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Workload is a loaded process table plus an optional quantum carried by the file.
type Workload struct {
	Processes  []sim.Process
	Quantum    int64
	HasQuantum bool
}

// LoadProcesses reads a workload file in the given format.
func LoadProcesses(path string, format Format) (*Workload, error) {
	if format == FormatAuto {
		format = DetectFormat(path)
	}
	switch format {
	case FormatText:
		procs, err := LoadProcessFile(path)
		if err != nil {
			return nil, err
		}
		return &Workload{Processes: procs}, nil
	case FormatYAML:
		spec, err := LoadWorkloadSpec(path)
		if err != nil {
			return nil, err
		}
		w := &Workload{Processes: spec.ToProcesses()}
		if spec.Quantum != nil {
			w.Quantum, w.HasQuantum = *spec.Quantum, true
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown workload format %q", format)
	}
}

// LoadProcessFile reads a text process file from disk.
func LoadProcessFile(path string) ([]sim.Process, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open process file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseProcesses(f, path)
}

// ParseProcesses parses the text process format: a stream of unsigned decimal
// integers separated by any non-digit bytes. The first integer is the process
// count n, followed by n triples of pid, arrival time and burst time.
// A final integer terminated by end of input is accepted, so files without a
// trailing newline load. Stricter readers of this format reject them.
// name is only used in error messages.
func ParseProcesses(r io.Reader, name string) ([]sim.Process, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read process file: %w", err)
	}
	sc := &intScanner{cursor: parsly.NewCursor(name, data, 0), name: name}

	count, err := sc.next("process count")
	if err != nil {
		return nil, err
	}
	// Bound the allocation by what the input could possibly hold.
	procs := make([]sim.Process, 0, min(count, int64(len(data)/6+1)))
	seen := make(map[int64]bool)
	for i := int64(0); i < count; i++ {
		pid, err := sc.next(fmt.Sprintf("pid of process %d", i))
		if err != nil {
			return nil, err
		}
		arrival, err := sc.next(fmt.Sprintf("arrival time of process %d", i))
		if err != nil {
			return nil, err
		}
		burst, err := sc.next(fmt.Sprintf("burst time of process %d", i))
		if err != nil {
			return nil, err
		}
		if burst == 0 {
			return nil, &ParseError{Path: name, Offset: sc.start, Msg: fmt.Sprintf("process %d has zero burst time", pid)}
		}
		if seen[pid] {
			logrus.Warnf("%s: duplicate pid %d", displayName(name), pid)
		}
		seen[pid] = true
		procs = append(procs, sim.NewProcess(pid, arrival, burst))
	}
	if sc.cursor.MatchAfterOptional(separatorToken, digitsToken).Code == digitsCode {
		logrus.Warnf("%s: ignoring data after %d declared processes", displayName(name), count)
	}
	logrus.Debugf("Loaded %d processes from %s", len(procs), displayName(name))
	return procs, nil
}

// intScanner pulls successive integers off a parsly cursor.
type intScanner struct {
	cursor *parsly.Cursor
	start  int // offset of the last integer returned
	name   string
}

// next skips separators and returns the following integer.
func (s *intScanner) next(what string) (int64, error) {
	matched := s.cursor.MatchAfterOptional(separatorToken, digitsToken)
	if matched.Code != digitsCode {
		if !s.cursor.HasMore() {
			return 0, &ParseError{Path: s.name, Offset: s.cursor.Pos, Msg: "reading " + what, Err: ErrUnexpectedEOF}
		}
		return 0, &ParseError{Path: s.name, Offset: s.cursor.Pos, Msg: "reading " + what, Err: s.cursor.NewError(digitsToken)}
	}
	text := matched.Text(s.cursor)
	s.start = s.cursor.Pos - len(text)
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, &ParseError{Path: s.name, Offset: s.start, Msg: fmt.Sprintf("%s overflows int64", what)}
	}
	return v, nil
}

func displayName(name string) string {
	if name == "" {
		return "<input>"
	}
	return name
}
