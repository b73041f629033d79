package identity

import (
	"context"
	"fmt"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/h108777/ThreatMap/database"
	"github.com/h108777/ThreatMap/model"
)

// userRepo is the persistence seam for the gateway; tests substitute a fake.
type userRepo interface {
	getByEmail(ctx context.Context, email string) (*model.User, error)
	insert(ctx context.Context, user *model.User) error
}

type arangoUserRepo struct {
	db database.DBConnection
}

func (r *arangoUserRepo) getByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `FOR u IN users FILTER u.email == @email RETURN u`
	cursor, err := r.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"email": email},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var user model.User
	if _, err := cursor.ReadDocument(ctx, &user); err != nil {
		return nil, fmt.Errorf("user not found")
	}
	return &user, nil
}

func (r *arangoUserRepo) insert(ctx context.Context, user *model.User) error {
	query := `
		INSERT {
			uid: @uid,
			email: @email,
			name: @name,
			password_hash: @password_hash,
			created_at: @created_at,
			updated_at: @updated_at
		} INTO users
	`
	bindVars := map[string]interface{}{
		"uid":           user.UID,
		"email":         user.Email,
		"name":          user.Name,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}
	_, err := r.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	return err
}
