package replay

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("session not found")

type DefaultRecorder struct {
	db *sql.DB
}

func (r *DefaultRecorder) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("unable to open session database: %w", err)
	}

	initStatement := `
	create table if not exists sessions
	  (
		  id text not null primary key,
		  created integer not null,
		  chart text not null,
		  difficulty integer not null,
		  window_size integer not null,
		  frames blob not null
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return fmt.Errorf("unable to create sessions table: %w", err)
	}

	r.db = db
	return nil
}

func (r *DefaultRecorder) Deinit() error {
	if nil == r.db {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *DefaultRecorder) Save(s *Session) error {
	data, err := json.Marshal(compactFrames(s.Frames))
	if nil != err {
		return fmt.Errorf("unable to marshal frames: %w", err)
	}
	_, err = r.db.Exec(
		"insert into sessions(id, created, chart, difficulty, window_size, frames) values(?, ?, ?, ?, ?, ?)",
		s.ID.String(), s.Created.Unix(), s.Source.Chart, s.Source.Difficulty, int64(s.Source.WindowSize), data,
	)
	if nil != err {
		return fmt.Errorf("unable to save session %v: %w", s.ID, err)
	}
	return nil
}

func (r *DefaultRecorder) Load(id uuid.UUID) (*Session, error) {
	var (
		created int64
		source  Source
		window  int64
		data    []byte
	)
	err := r.db.QueryRow("select created, chart, difficulty, window_size, frames from sessions where id = ?", id.String()).
		Scan(&created, &source.Chart, &source.Difficulty, &window, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%v: %w", id, ErrNotFound)
	}
	if nil != err {
		return nil, fmt.Errorf("unable to load session %v: %w", id, err)
	}

	var fc framesCompact
	if err := json.Unmarshal(data, &fc); nil != err {
		return nil, fmt.Errorf("unable to unmarshal frames of %v: %w", id, err)
	}
	source.WindowSize = time.Duration(window)
	return &Session{
		ID:      id,
		Created: time.Unix(created, 0).UTC(),
		Source:  source,
		Frames:  uncompactFrames(fc),
	}, nil
}

// List returns every session, oldest first
func (r *DefaultRecorder) List() ([]Summary, error) {
	rows, err := r.db.Query("select id, created, chart, frames from sessions order by created, rowid")
	if nil != err {
		return nil, fmt.Errorf("unable to list sessions: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var (
			id      string
			created int64
			chart   string
			data    []byte
		)
		if err := rows.Scan(&id, &created, &chart, &data); nil != err {
			return nil, fmt.Errorf("unable to scan session: %w", err)
		}
		uid, err := uuid.Parse(id)
		if nil != err {
			return nil, fmt.Errorf("invalid session id %q: %w", id, err)
		}
		var fc framesCompact
		if err := json.Unmarshal(data, &fc); nil != err {
			return nil, fmt.Errorf("unable to unmarshal frames of %v: %w", id, err)
		}
		s := Session{Frames: uncompactFrames(fc)}
		summaries = append(summaries, Summary{
			ID:       uid,
			Created:  time.Unix(created, 0).UTC(),
			Chart:    chart,
			Frames:   len(s.Frames),
			Duration: s.Duration(),
		})
	}
	return summaries, rows.Err()
}
