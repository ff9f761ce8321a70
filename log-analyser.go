package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/hyp3rd/ewrap"
	"github.com/rs/zerolog"
)

// maxLineSize — сколько байт строки сопоставляется с шаблоном; остаток длинной строки отбрасывается.
const maxLineSize = 1 << 20

// linePattern привязан только к началу строки: хвост после числа допускается.
// Имя после Adding — буквы и цифры любого алфавита.
var linePattern = regexp.MustCompile(`^(\d+:\d+:\d+\.\d+) \[info\] (World tick|Adding [\p{L}\p{N}_]+) took: (\d+)`)

// Entry — одна распознанная запись лога.
type Entry struct {
	Timestamp string
	Category  string
	Duration  int64
}

// parseLine разбирает строку лога. ok == false, если строка не подходит под шаблон.
func parseLine(line string) (Entry, bool, error) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false, nil
	}
	d, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return Entry{}, false, err
	}
	return Entry{Timestamp: m[1], Category: m[2], Duration: d}, true, nil
}

// readLine возвращает очередную строку без перевода строки. От строк длиннее
// maxLineSize остаются первые maxLineSize байт, остаток дочитывается и отбрасывается.
func readLine(r *bufio.Reader) (string, error) {
	var buf []byte
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if err == io.EOF && buf != nil {
				return string(buf), nil
			}
			return "", err
		}
		if room := maxLineSize - len(buf); room > 0 {
			buf = append(buf, chunk[:min(len(chunk), room)]...)
		}
		if buf == nil {
			buf = []byte{}
		}
		if !isPrefix {
			return string(buf), nil
		}
	}
}

// Report — результат одного прохода по логу.
type Report struct {
	Categories []*CategoryStats // в порядке первого появления
	Lines      int
	Matched    int
}

// Category ищет категорию по имени.
func (r *Report) Category(name string) (*CategoryStats, bool) {
	for _, c := range r.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Option настраивает Aggregator.
type Option func(*Aggregator)

// WithTrace включает печать каждой распознанной длительности в w.
func WithTrace(w io.Writer) Option {
	return func(a *Aggregator) {
		a.trace = w
	}
}

// WithLogger задаёт логгер для диагностики.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// Aggregator собирает статистику по категориям, сохраняя порядок первого появления.
type Aggregator struct {
	order  []*CategoryStats
	index  map[string]*CategoryStats
	lines  int
	trace  io.Writer
	logger zerolog.Logger
}

// NewAggregator создаёт пустой агрегатор.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		index:  make(map[string]*CategoryStats),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Feed обрабатывает одну строку и сообщает, была ли она учтена.
func (a *Aggregator) Feed(line string) bool {
	a.lines++

	entry, ok, err := parseLine(line)
	if err != nil {
		a.logger.Debug().Err(err).Int("line", a.lines).Msg("длительность не помещается в int64, строка пропущена")
		return false
	}
	if !ok {
		return false
	}

	if a.trace != nil {
		fmt.Fprintln(a.trace, entry.Duration)
	}

	stats, found := a.index[entry.Category]
	if !found {
		stats = newCategoryStats(entry.Category)
		a.index[entry.Category] = stats
		a.order = append(a.order, stats)
	}
	stats.Add(entry.Duration)
	return true
}

// Report возвращает накопленный результат.
func (a *Aggregator) Report() *Report {
	matched := 0
	for _, c := range a.order {
		matched += c.Count
	}
	return &Report{
		Categories: a.order,
		Lines:      a.lines,
		Matched:    matched,
	}
}

// AnalyzeReader читает лог из r построчно и возвращает статистику.
// При ошибке чтения или отмене контекста отчёт не возвращается.
func AnalyzeReader(ctx context.Context, r io.Reader, opts ...Option) (*Report, error) {
	agg := NewAggregator(opts...)

	reader := bufio.NewReaderSize(r, 64*1024)
	for {
		line, err := readLine(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ewrap.Wrapf(ErrRead, "line %d: %v", agg.lines+1, err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		agg.Feed(line)
	}

	report := agg.Report()
	agg.logger.Info().
		Int("lines", report.Lines).
		Int("matched", report.Matched).
		Int("categories", len(report.Categories)).
		Msg("лог обработан")

	return report, nil
}

// Analyze открывает файл по пути path и передаёт его в AnalyzeReader.
func Analyze(ctx context.Context, path string, opts ...Option) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ewrap.Wrapf(ErrFileAccess, "%s: %v", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, ewrap.Wrapf(ErrFileAccess, "%s: not a regular file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ewrap.Wrapf(ErrFileAccess, "%s: %v", path, err)
	}
	defer file.Close()

	report, err := AnalyzeReader(ctx, file, opts...)
	if err != nil {
		return nil, ewrap.Wrap(err, path)
	}
	return report, nil
}
