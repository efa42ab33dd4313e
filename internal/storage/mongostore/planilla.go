package mongostore

import (
	"context"
	"time"

	"examen-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// registroDocument uses the normalized CSV header names as keys. Nil pointers
// are written as explicit nulls.
type registroDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Nombre       string             `bson:"nombre"`
	Apellido     string             `bson:"apellido"`
	Sexo         string             `bson:"sexo_m/f"`
	DNI          string             `bson:"dni"`
	EstadoCivil  string             `bson:"estado_civil"`
	Deporte      string             `bson:"deporte"`
	Sueldo       *float64           `bson:"sueldo"`
	FechaIngreso *time.Time         `bson:"fecha_ingreso"`
	NHijos       *int               `bson:"n_hijos"`
	Profesion    string             `bson:"profesión"`
}

func newRegistroDocument(r models.RegistroPlanilla) registroDocument {
	return registroDocument{
		ID:           primitive.NewObjectID(),
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
}

func (s *Store) InsertRegistro(ctx context.Context, registro models.RegistroPlanilla) (string, error) {
	coll, err := s.collection(ctx, PlanillaCollection)
	if err != nil {
		return "", err
	}

	doc := newRegistroDocument(registro)
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return "", translate(err)
	}
	return doc.ID.Hex(), nil
}

func (s *Store) DeleteAllRegistros(ctx context.Context) (int64, error) {
	coll, err := s.collection(ctx, PlanillaCollection)
	if err != nil {
		return 0, err
	}

	res, err := coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, translate(err)
	}
	return res.DeletedCount, nil
}
