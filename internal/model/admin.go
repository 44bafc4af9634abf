package model

type Admin struct {
	BaseModel    `bson:",inline"`
	Email        string `db:"email" json:"email" bson:"email"`
	PasswordHash string `db:"password_hash" json:"-" bson:"password_hash"`
	Name         string `db:"display_name" json:"name" bson:"display_name"`
}
