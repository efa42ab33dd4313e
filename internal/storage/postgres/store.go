package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"examen-portal/internal/models"
	"examen-portal/internal/storage"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore    = (*Store)(nil)
	_ storage.PayrollStore = (*Store)(nil)
	_ storage.Pinger       = (*Store)(nil)
)

type usuarioRow struct {
	ID        uint      `gorm:"primaryKey"`
	Nombre    string    `gorm:"size:100;not null"`
	Apellido  string    `gorm:"size:100;not null"`
	Celular   string    `gorm:"size:30;not null"`
	Email     string    `gorm:"uniqueIndex;size:255;not null"`
	Usuario   string    `gorm:"uniqueIndex;size:50;not null"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (usuarioRow) TableName() string { return "usuario" }

type registroRow struct {
	ID           uint   `gorm:"primaryKey"`
	Nombre       string `gorm:"size:100"`
	Apellido     string `gorm:"size:100"`
	Sexo         string `gorm:"column:sexo_m_f;size:10"`
	DNI          string `gorm:"column:dni;size:20"`
	EstadoCivil  string `gorm:"size:50"`
	Deporte      string `gorm:"size:100"`
	Sueldo       *float64
	FechaIngreso *time.Time `gorm:"type:date"`
	NHijos       *int       `gorm:"column:n_hijos"`
	Profesion    string     `gorm:"column:profesion;size:100"`
}

func (registroRow) TableName() string { return "planilla_sueldos" }

// Store provides Postgres-backed persistence through gorm.
type Store struct {
	db *gorm.DB
}

// NewStore migrates the schema and returns a ready store.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&usuarioRow{}, &registroRow{}); err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases database resources.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) InsertUser(ctx context.Context, user models.Usuario) (string, error) {
	row := usuarioRow{
		Nombre:    user.Nombre,
		Apellido:  user.Apellido,
		Celular:   user.Celular,
		Email:     user.Email,
		Usuario:   user.Usuario,
		Password:  user.Password,
		CreatedAt: user.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", translate(err)
	}
	return strconv.FormatUint(uint64(row.ID), 10), nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (models.Usuario, error) {
	return s.findUser(ctx, "usuario = ?", username)
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.Usuario, error) {
	return s.findUser(ctx, "email = ?", email)
}

func (s *Store) findUser(ctx context.Context, query string, arg string) (models.Usuario, error) {
	var row usuarioRow
	if err := s.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		return models.Usuario{}, translate(err)
	}
	return models.Usuario{
		ID:        strconv.FormatUint(uint64(row.ID), 10),
		Nombre:    row.Nombre,
		Apellido:  row.Apellido,
		Celular:   row.Celular,
		Email:     row.Email,
		Usuario:   row.Usuario,
		Password:  row.Password,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (s *Store) InsertRegistro(ctx context.Context, r models.RegistroPlanilla) (string, error) {
	row := registroRow{
		Nombre:       r.Nombre,
		Apellido:     r.Apellido,
		Sexo:         r.Sexo,
		DNI:          r.DNI,
		EstadoCivil:  r.EstadoCivil,
		Deporte:      r.Deporte,
		Sueldo:       r.Sueldo,
		FechaIngreso: r.FechaIngreso,
		NHijos:       r.NHijos,
		Profesion:    r.Profesion,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", translate(err)
	}
	return strconv.FormatUint(uint64(row.ID), 10), nil
}

func (s *Store) DeleteAllRegistros(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&registroRow{})
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", storage.ErrAlreadyExists, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %v", storage.ErrAlreadyExists, err)
	}
	return err
}
