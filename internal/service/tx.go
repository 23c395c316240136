package service

import (
	"context"
	"errors"

	"github.com/Ayax911/ClothingStore/internal/apperr"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode with stub repos).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// traducirStorage clasifica errores del almacenamiento. Una violacion de
// unicidad detectada recien al confirmar (dos escritores concurrentes que
// pasaron el pre-chequeo) se reporta como DuplicateCode, igual que el
// pre-chequeo de la aplicacion. Todo lo demas no clasificado es
// StorageFailure: nunca se convierte en exito silencioso.
func traducirStorage(err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Wrap(apperr.DuplicateCode, "codigo ya existente", err)
	}
	return apperr.Wrap(apperr.StorageFailure, "error de almacenamiento", err)
}

// notFound reporta si err es el "no existe" de GORM.
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
