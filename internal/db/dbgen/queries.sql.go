package dbgen

import (
	"context"
	"encoding/json"
)

const createUser = `
INSERT INTO users (id, email, password, display_name)
VALUES ($1, $2, $3, $4)
RETURNING id, email, password, display_name, created_at
`

type CreateUserParams struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.ID, arg.Email, arg.Password, arg.DisplayName)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

const getUserByEmail = `
SELECT id, email, password, display_name, created_at
FROM users WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

const getUserByID = `
SELECT id, email, password, display_name, created_at
FROM users WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

const createDrawing = `
INSERT INTO drawings (id, name, owner_id)
VALUES ($1, $2, $3)
RETURNING id, name, owner_id, width, height, created_at, updated_at
`

type CreateDrawingParams struct {
	ID      string
	Name    string
	OwnerID string
}

func (q *Queries) CreateDrawing(ctx context.Context, arg CreateDrawingParams) (Drawing, error) {
	row := q.db.QueryRow(ctx, createDrawing, arg.ID, arg.Name, arg.OwnerID)
	var d Drawing
	err := row.Scan(&d.ID, &d.Name, &d.OwnerID, &d.Width, &d.Height, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

const getDrawing = `
SELECT id, name, owner_id, width, height, created_at, updated_at
FROM drawings WHERE id = $1
`

func (q *Queries) GetDrawing(ctx context.Context, id string) (Drawing, error) {
	row := q.db.QueryRow(ctx, getDrawing, id)
	var d Drawing
	err := row.Scan(&d.ID, &d.Name, &d.OwnerID, &d.Width, &d.Height, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

const listDrawingsForUser = `
SELECT d.id, d.name, d.owner_id, d.width, d.height, d.created_at, d.updated_at
FROM drawings d
JOIN drawing_members m ON m.drawing_id = d.id
WHERE m.user_id = $1
ORDER BY d.updated_at DESC
`

func (q *Queries) ListDrawingsForUser(ctx context.Context, userID string) ([]Drawing, error) {
	rows, err := q.db.Query(ctx, listDrawingsForUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Drawing
	for rows.Next() {
		var d Drawing
		if err := rows.Scan(&d.ID, &d.Name, &d.OwnerID, &d.Width, &d.Height, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

const deleteDrawing = `
DELETE FROM drawings WHERE id = $1
`

func (q *Queries) DeleteDrawing(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, deleteDrawing, id)
	return err
}

const addDrawingMember = `
INSERT INTO drawing_members (drawing_id, user_id, role)
VALUES ($1, $2, $3)
ON CONFLICT (drawing_id, user_id) DO NOTHING
`

type AddDrawingMemberParams struct {
	DrawingID string
	UserID    string
	Role      DrawingRole
}

func (q *Queries) AddDrawingMember(ctx context.Context, arg AddDrawingMemberParams) error {
	_, err := q.db.Exec(ctx, addDrawingMember, arg.DrawingID, arg.UserID, arg.Role)
	return err
}

const getDrawingMember = `
SELECT drawing_id, user_id, role
FROM drawing_members WHERE drawing_id = $1 AND user_id = $2
`

type GetDrawingMemberParams struct {
	DrawingID string
	UserID    string
}

func (q *Queries) GetDrawingMember(ctx context.Context, arg GetDrawingMemberParams) (DrawingMember, error) {
	row := q.db.QueryRow(ctx, getDrawingMember, arg.DrawingID, arg.UserID)
	var m DrawingMember
	err := row.Scan(&m.DrawingID, &m.UserID, &m.Role)
	return m, err
}

const listDrawingMembers = `
SELECT m.user_id, m.role, u.display_name, u.email
FROM drawing_members m
JOIN users u ON u.id = m.user_id
WHERE m.drawing_id = $1
ORDER BY u.display_name
`

type ListDrawingMembersRow struct {
	UserID      string
	Role        DrawingRole
	DisplayName string
	Email       string
}

func (q *Queries) ListDrawingMembers(ctx context.Context, drawingID string) ([]ListDrawingMembersRow, error) {
	rows, err := q.db.Query(ctx, listDrawingMembers, drawingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListDrawingMembersRow
	for rows.Next() {
		var m ListDrawingMembersRow
		if err := rows.Scan(&m.UserID, &m.Role, &m.DisplayName, &m.Email); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const removeDrawingMember = `
DELETE FROM drawing_members WHERE drawing_id = $1 AND user_id = $2
`

type RemoveDrawingMemberParams struct {
	DrawingID string
	UserID    string
}

func (q *Queries) RemoveDrawingMember(ctx context.Context, arg RemoveDrawingMemberParams) error {
	_, err := q.db.Exec(ctx, removeDrawingMember, arg.DrawingID, arg.UserID)
	return err
}

const createSnapshot = `
INSERT INTO snapshots (id, drawing_id, version, document)
VALUES ($1, $2, $3, $4)
RETURNING id, drawing_id, version, document, created_at
`

type CreateSnapshotParams struct {
	ID        string
	DrawingID string
	Version   int32
	Document  json.RawMessage
}

func (q *Queries) CreateSnapshot(ctx context.Context, arg CreateSnapshotParams) (Snapshot, error) {
	row := q.db.QueryRow(ctx, createSnapshot, arg.ID, arg.DrawingID, arg.Version, arg.Document)
	var s Snapshot
	err := row.Scan(&s.ID, &s.DrawingID, &s.Version, &s.Document, &s.CreatedAt)
	return s, err
}

const getLatestSnapshot = `
SELECT id, drawing_id, version, document, created_at
FROM snapshots WHERE drawing_id = $1
ORDER BY version DESC LIMIT 1
`

func (q *Queries) GetLatestSnapshot(ctx context.Context, drawingID string) (Snapshot, error) {
	row := q.db.QueryRow(ctx, getLatestSnapshot, drawingID)
	var s Snapshot
	err := row.Scan(&s.ID, &s.DrawingID, &s.Version, &s.Document, &s.CreatedAt)
	return s, err
}
