package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"git.lost.host/meutraa/hitsound/internal/game"
	"git.lost.host/meutraa/hitsound/internal/hits"
	"git.lost.host/meutraa/hitsound/internal/logger"
)

type DefaultStore struct {
	db *sql.DB
}

// HitsCompact is every hit of one sound, stored column-wise
type HitsCompact struct {
	Sound hits.Sound
	Times []game.Tick
	Xs    []float64
}

func compactHits(in []hits.Hit) []HitsCompact {
	index := map[hits.Sound]int{}
	out := []HitsCompact{}
	for _, h := range in {
		i, ok := index[h.Sound]
		if !ok {
			i = len(out)
			index[h.Sound] = i
			out = append(out, HitsCompact{Sound: h.Sound, Times: []game.Tick{}, Xs: []float64{}})
		}
		out[i].Times = append(out[i].Times, h.Time)
		out[i].Xs = append(out[i].Xs, h.X)
	}
	return out
}

func uncompactHits(in []HitsCompact) []hits.Hit {
	out := []hits.Hit{}
	for _, c := range in {
		for i, t := range c.Times {
			out = append(out, hits.Hit{Time: t, X: c.Xs[i], Sound: c.Sound})
		}
	}
	return hits.Normalize(out)
}

// Sum keys stored hits by chart text and the settings that change them
func Sum(chartSum string, offset game.Tick, radius int64) string {
	key := chartSum + "\x00" + strconv.FormatInt(int64(offset), 10) + "\x00" + strconv.FormatInt(radius, 10)
	sum := sha256.Sum256([]byte(key))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultStore) Init(file string) error {
	db, err := sql.Open("sqlite3", file)
	if nil != err {
		return errors.Wrap(err, "unable to open hit store")
	}

	initStatement := `
	create table if not exists hits
	  (
		  id integer not null primary key,
		  sum text not null,
		  run text,
		  count integer,
		  payload blob
	  );
	create index if not exists hits_sum on hits(sum);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return errors.Wrap(err, "unable to create hit store")
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
}

func (s *DefaultStore) Save(sum, run string, in []hits.Hit) error {
	data, err := json.Marshal(compactHits(in))
	if nil != err {
		return errors.Wrap(err, "unable to marshal hits")
	}
	_, err = s.db.Exec("insert into hits(sum, run, count, payload) values(?, ?, ?, ?)", sum, run, len(in), data)
	if nil != err {
		return errors.Wrap(err, "unable to save hits")
	}
	return nil
}

func (s *DefaultStore) Load(sum string) ([]hits.Hit, bool) {
	var payload []byte
	err := s.db.QueryRow("select payload from hits where sum = ? order by id desc limit 1", sum).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if nil != err {
		logger.Warn("unable to load hits", logger.Err(err))
		return nil, false
	}
	var cs []HitsCompact
	if err := json.Unmarshal(payload, &cs); nil != err {
		logger.Warn("unable to unmarshal stored hits", logger.Err(err))
		return nil, false
	}
	return uncompactHits(cs), true
}

func (s *DefaultStore) History(sum string) ([]Run, error) {
	rows, err := s.db.Query("select run, count from hits where sum = ? order by id", sum)
	if nil != err {
		return nil, errors.Wrap(err, "unable to load history")
	}
	defer rows.Close()
	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Count); nil != err {
			return nil, errors.Wrap(err, "unable to scan history")
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
