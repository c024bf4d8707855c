package models

import "time"

type Client struct {
	ID        int     `json:"id" gorm:"primaryKey"`
	Nombre    string  `json:"nombre"`
	Rut       *string `json:"rut"`
	Correo    *string `json:"correo"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Client) TableName() string {
	return "clientes"
}
