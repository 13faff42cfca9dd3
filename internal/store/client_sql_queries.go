package store

const (
	getLocalValue = `SELECT value FROM kv WHERE key = ?;`

	setLocalValue = `INSERT INTO kv (key, value, updated_at)
    VALUES (?, ?, CURRENT_TIMESTAMP)
    ON CONFLICT(key) DO UPDATE SET
        value = excluded.value,
        updated_at = excluded.updated_at;`
)
