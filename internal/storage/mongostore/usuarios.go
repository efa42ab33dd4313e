package mongostore

import (
	"context"
	"fmt"
	"time"

	"examen-portal/internal/models"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type usuarioDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Nombre    string             `bson:"nombre"`
	Apellido  string             `bson:"apellido"`
	Celular   string             `bson:"celular"`
	Email     string             `bson:"email"`
	Usuario   string             `bson:"usuario"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d usuarioDocument) model() models.Usuario {
	return models.Usuario{
		ID:        d.ID.Hex(),
		Nombre:    d.Nombre,
		Apellido:  d.Apellido,
		Celular:   d.Celular,
		Email:     d.Email,
		Usuario:   d.Usuario,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
	}
}

func (s *Store) InsertUser(ctx context.Context, user models.Usuario) (string, error) {
	coll, err := s.collection(ctx, UsuarioCollection)
	if err != nil {
		return "", err
	}

	doc := usuarioDocument{
		ID:        primitive.NewObjectID(),
		Nombre:    user.Nombre,
		Apellido:  user.Apellido,
		Celular:   user.Celular,
		Email:     user.Email,
		Usuario:   user.Usuario,
		Password:  user.Password,
		CreatedAt: user.CreatedAt,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return "", translate(err)
	}
	return doc.ID.Hex(), nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (models.Usuario, error) {
	return s.findUser(ctx, bson.M{"usuario": username})
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.Usuario, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (models.Usuario, error) {
	coll, err := s.collection(ctx, UsuarioCollection)
	if err != nil {
		return models.Usuario{}, err
	}

	var doc usuarioDocument
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return models.Usuario{}, translate(err)
	}
	return doc.model(), nil
}

// EnsureIndexes creates the unique indexes on usuario and email. Existing
// duplicate data makes this fail; the caller decides whether that is fatal.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	coll, err := s.collection(ctx, UsuarioCollection)
	if err != nil {
		return err
	}

	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "usuario", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("usuario_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("create usuario indexes: %w", err)
	}
	log.Debug().Str("collection", UsuarioCollection).Msg("unique indexes ensured")
	return nil
}
