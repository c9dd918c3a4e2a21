package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/contre95/songlib/src/music"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteCatalog is a SQLite implementation of the Catalog interface.
type SqliteCatalog struct {
	db *sql.DB
}

// NewSqliteCatalog creates a new SqliteCatalog.
func NewSqliteCatalog(path string) (*SqliteCatalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &SqliteCatalog{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			release_date TEXT,
			link TEXT,
			external_id TEXT,
			lyrics TEXT,
			added_date TEXT,
			modified_date TEXT,
			UNIQUE(title, artist)
		);

		CREATE INDEX IF NOT EXISTS idx_songs_link ON songs(link);
		CREATE INDEX IF NOT EXISTS idx_songs_release_date ON songs(release_date);
	`)
	return err
}

// Exists reports whether a song with the exact title and artist is
// already cataloged.
func (d *SqliteCatalog) Exists(ctx context.Context, title, artist string) (bool, error) {
	var one int
	err := d.db.QueryRowContext(ctx, `
		SELECT 1 FROM songs WHERE title = ? AND artist = ?
	`, title, artist).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddSong adds a song to the database and assigns its ID.
func (d *SqliteCatalog) AddSong(ctx context.Context, song *music.Song) (string, error) {
	if err := song.Validate(); err != nil {
		slog.Error("AddSong: validation failed", "error", err, "title", song.Title, "artist", song.Artist)
		return "", err
	}

	song.ID = uuid.New().String()
	now := time.Now()
	song.AddedDate = now
	song.ModifiedDate = now

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO songs (id, title, artist, release_date, link, external_id, lyrics, added_date, modified_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, song.ID, song.Title, song.Artist, song.ReleaseDate, song.Link, song.ExternalID,
		song.LyricsText(), now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return "", fmt.Errorf("song %q by %q: %w", song.Title, song.Artist, music.ErrSongExists)
		}
		return "", err
	}

	return song.ID, nil
}

// GetSong returns a song by ID, or nil when absent.
func (d *SqliteCatalog) GetSong(ctx context.Context, id string) (*music.Song, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT id, title, artist, release_date, link, external_id, lyrics, added_date, modified_date
		FROM songs WHERE id = ?
	`, id)

	song, err := scanSong(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return song, nil
}

// UpdateSong applies the partial update and reports whether the song
// existed.
func (d *SqliteCatalog) UpdateSong(ctx context.Context, id string, update music.SongUpdate) (bool, error) {
	sets := []string{"modified_date = ?"}
	args := []any{time.Now().Format(time.RFC3339)}

	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Artist != nil {
		sets = append(sets, "artist = ?")
		args = append(args, *update.Artist)
	}
	if update.Lyrics != nil {
		sets = append(sets, "lyrics = ?")
		args = append(args, strings.Join(update.Lyrics, "\n"))
	}
	args = append(args, id)

	res, err := d.db.ExecContext(ctx, `
		UPDATE songs SET `+strings.Join(sets, ", ")+` WHERE id = ?
	`, args...)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return false, fmt.Errorf("song id %q: %w", id, music.ErrSongExists)
		}
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteSong removes a song and reports whether it existed.
func (d *SqliteCatalog) DeleteSong(ctx context.Context, id string) (bool, error) {
	res, err := d.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// SearchSongs returns at most music.MaxSearchResults songs matching the
// filter. When keywords are present, results are ordered by the number
// of keywords each song matches across title, artist and lyrics; ties
// and keyword-less searches fall back to title/artist order so repeated
// searches stay stable.
func (d *SqliteCatalog) SearchSongs(ctx context.Context, filter music.SearchFilter) ([]*music.Song, error) {
	relevance := "0"
	var args []any
	var conds []string

	if len(filter.Keywords) > 0 {
		var scoreParts, matchParts []string
		for _, kw := range filter.Keywords {
			pattern := "%" + kw + "%"
			scoreParts = append(scoreParts,
				"(CASE WHEN title LIKE ? OR artist LIKE ? OR lyrics LIKE ? THEN 1 ELSE 0 END)")
			args = append(args, pattern, pattern, pattern)
			matchParts = append(matchParts, "title LIKE ? OR artist LIKE ? OR lyrics LIKE ?")
		}
		relevance = strings.Join(scoreParts, " + ")
		cond := "(" + strings.Join(matchParts, " OR ") + ")"
		for _, kw := range filter.Keywords {
			pattern := "%" + kw + "%"
			args = append(args, pattern, pattern, pattern)
		}
		conds = append(conds, cond)
	}

	if filter.Link != "" {
		conds = append(conds, "link = ?")
		args = append(args, filter.Link)
	}
	if filter.ReleaseDateFrom != "" {
		conds = append(conds, "release_date != '' AND release_date >= ?")
		args = append(args, filter.ReleaseDateFrom)
	}
	if filter.ReleaseDateTo != "" {
		conds = append(conds, "release_date != '' AND release_date <= ?")
		args = append(args, filter.ReleaseDateTo)
	}

	query := `
		SELECT id, title, artist, release_date, link, external_id, lyrics, added_date, modified_date,
			(` + relevance + `) AS relevance
		FROM songs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY relevance DESC, title ASC, artist ASC LIMIT %d", music.MaxSearchResults)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []*music.Song
	for rows.Next() {
		var score int
		song, err := scanSong(func(dest ...any) error {
			return rows.Scan(append(dest, &score)...)
		})
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// scanSong reads one songs row through the given scan function.
func scanSong(scan func(dest ...any) error) (*music.Song, error) {
	var song music.Song
	var releaseDate, link, externalID, lyrics sql.NullString
	var addedDate, modifiedDate string

	err := scan(&song.ID, &song.Title, &song.Artist, &releaseDate, &link, &externalID, &lyrics, &addedDate, &modifiedDate)
	if err != nil {
		return nil, err
	}

	song.ReleaseDate = releaseDate.String
	song.Link = link.String
	song.ExternalID = externalID.String
	if lyrics.String != "" {
		song.Lyrics = music.VersesFromLines(strings.Split(lyrics.String, "\n"))
	}
	if t, err := time.Parse(time.RFC3339, addedDate); err == nil {
		song.AddedDate = t
	}
	if t, err := time.Parse(time.RFC3339, modifiedDate); err == nil {
		song.ModifiedDate = t
	}
	return &song, nil
}
