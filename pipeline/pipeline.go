package pipeline

import (
	"github.com/lawbase/casedb/config"
	"github.com/lawbase/casedb/consts"
	"github.com/lawbase/casedb/database"
	"github.com/lawbase/casedb/file"
	"github.com/lawbase/casedb/log"
	"github.com/lawbase/casedb/parser"
)

type State int

const (
	Idle State = iota
	Discovering
	Loading
	Indexing
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Discovering:
		return "discovering"
	case Loading:
		return "loading"
	case Indexing:
		return "indexing"
	case Done:
		return "done"
	}
	return "failed"
}

type FileError struct {
	File string
	Err  error
}

// Result is the terminal report of one run. Failures is always populated,
// even on overall success, so partial ingestion is never silent.
type Result struct {
	State    State
	Tables   []string
	Rows     map[string]int
	Failures []FileError
	Indexes  []string
	Warnings []string
}

// Pipeline drives discovery, load, write and indexing in sequence. A missing
// data path or an unopenable database fails the whole run, a broken file
// only loses that file.
type Pipeline struct {
	cfg   *config.Config
	state State
}

func New(cfg *config.Config) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Pipeline{cfg: cfg}
}

func (p *Pipeline) State() State {
	return p.state
}

func (p *Pipeline) Run(dataPath, dbPath string) (*Result, error) {
	result := &Result{
		Tables:   make([]string, 0),
		Rows:     map[string]int{},
		Failures: make([]FileError, 0),
		Indexes:  make([]string, 0),
	}
	p.state = Discovering
	paths, warnings, err := file.Discover(dataPath, consts.CSVExtension)
	if err != nil {
		return p.fail(result, err)
	}
	result.Warnings = warnings
	for _, w := range warnings {
		log.Warnf("discovery: %s", w)
	}
	log.Infof("discovered %d files under %s", len(paths), dataPath)
	db, err := database.New(dbPath)
	if err != nil {
		return p.fail(result, err)
	}
	defer db.Close()
	p.state = Loading
	created := map[string]bool{}
	for _, path := range paths {
		t, err := parser.ParseTable(path)
		if err != nil {
			log.Error(err)
			result.Failures = append(result.Failures, FileError{File: path, Err: err})
			continue
		}
		if err = db.EnsureTable(t.Name, t.Schema); err != nil {
			log.Error(err)
			result.Failures = append(result.Failures, FileError{File: path, Err: err})
			continue
		}
		if err = db.AppendRows(t.Name, t.Schema, t.Rows); err != nil {
			log.Error(err)
			result.Failures = append(result.Failures, FileError{File: path, Err: err})
			continue
		}
		if !created[t.Name] {
			created[t.Name] = true
			result.Tables = append(result.Tables, t.Name)
		}
		result.Rows[t.Name] += len(t.Rows)
		log.Infof("loaded %s into table %s, %d rows", path, t.Name, len(t.Rows))
	}
	p.state = Indexing
	indexes, err := db.BuildIndexes(p.cfg.IndexColumns)
	if err != nil {
		return p.fail(result, err)
	}
	result.Indexes = indexes
	p.state = Done
	result.State = Done
	return result, nil
}

func (p *Pipeline) fail(result *Result, err error) (*Result, error) {
	p.state = Failed
	result.State = Failed
	return result, err
}
