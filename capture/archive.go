package capture

import (
	"database/sql"
	"log"
	"time"

	"github.com/bearlytools/pkmn"
	"github.com/bearlytools/pkmn/internal/compress"
	"github.com/gostdlib/base/context"
	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

// Entry describes an archived capture without decoding it.
type Entry struct {
	Name        string
	Gen         pkmn.Gen
	Showdown    bool
	Frames      int
	Compression compress.Kind
	Size        int
	Created     time.Time
}

// Archive stores captures in a SQLite database.
type Archive struct {
	db   *sql.DB
	kind compress.Kind
}

// OpenArchive opens or creates the archive at path. Captures are stored compressed with kind.
func OpenArchive(ctx context.Context, path string, kind compress.Kind) (*Archive, error) {
	if path == "" {
		return nil, errors.New("capture.OpenArchive: empty db path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Archive{db: db, kind: kind}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS captures (
			name TEXT PRIMARY KEY,
			gen INTEGER NOT NULL,
			showdown INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			compression INTEGER NOT NULL,
			data BLOB NOT NULL,
			created TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS captures_gen ON captures(gen);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return errors.Wrapf(err, "capture archive schema")
		}
	}
	log.Println("capture archive schema ready")
	return nil
}

// Put stores c under name, replacing any capture already stored under it.
func (a *Archive) Put(ctx context.Context, name string, c *Capture) error {
	b, err := c.Compress(a.kind)
	if err != nil {
		return err
	}
	_, err = a.db.ExecContext(
		ctx,
		`INSERT INTO captures(name,gen,showdown,frames,compression,data,created) VALUES(?,?,?,?,?,?,?)
		ON CONFLICT(name) DO UPDATE SET gen=excluded.gen, showdown=excluded.showdown,
		frames=excluded.frames, compression=excluded.compression, data=excluded.data, created=excluded.created`,
		name, int(c.Gen), int(boolByte(c.Showdown)), len(c.Frames), int(a.kind), b, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return errors.Wrapf(err, "capture.Archive.Put(%s)", name)
	}
	return nil
}

// Get returns the capture stored under name. It returns sql.ErrNoRows when there is none.
func (a *Archive) Get(ctx context.Context, name string) (*Capture, error) {
	var b []byte
	err := a.db.QueryRowContext(ctx, `SELECT data FROM captures WHERE name=?`, name).Scan(&b)
	if err != nil {
		return nil, errors.Wrapf(err, "capture.Archive.Get(%s)", name)
	}
	return Read(b)
}

// List returns the archived captures of gen in name order. A zero gen lists every capture.
func (a *Archive) List(ctx context.Context, gen pkmn.Gen) ([]Entry, error) {
	rows, err := a.db.QueryContext(
		ctx,
		`SELECT name,gen,showdown,frames,compression,length(data),created FROM captures
		WHERE ?=0 OR gen=? ORDER BY name`,
		int(gen), int(gen),
	)
	if err != nil {
		return nil, errors.Wrap(err, "capture.Archive.List")
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			g, kind int
			created string
		)
		if err := rows.Scan(&e.Name, &g, &e.Showdown, &e.Frames, &kind, &e.Size, &created); err != nil {
			return nil, errors.Wrap(err, "capture.Archive.List")
		}
		e.Gen = pkmn.Gen(g)
		e.Compression = compress.Kind(kind)
		if e.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, errors.Wrapf(err, "capture.Archive.List(%s)", e.Name)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes the capture stored under name. Deleting a missing capture is not an error.
func (a *Archive) Delete(ctx context.Context, name string) error {
	if _, err := a.db.ExecContext(ctx, `DELETE FROM captures WHERE name=?`, name); err != nil {
		return errors.Wrapf(err, "capture.Archive.Delete(%s)", name)
	}
	return nil
}

// Close closes the database.
func (a *Archive) Close() error {
	return a.db.Close()
}
