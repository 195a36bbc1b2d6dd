package models

// Application is a logical app identified by a business code, linked to
// resources through ResourceApplicationMap.
type Application struct {
	ID         int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code       *string `gorm:"type:varchar(64);uniqueIndex:idx_application_code" json:"code"`
	Name       *string `gorm:"type:varchar(256)" json:"name"`
	OwnerTeam  *string `gorm:"type:varchar(256)" json:"owner_team"`
	OwnerEmail *string `gorm:"type:varchar(256)" json:"owner_email"`
}

func (Application) TableName() string { return "application" }
