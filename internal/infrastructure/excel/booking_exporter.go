// Package excel exporta listados del back office a XLSX.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
)

// BookingExporter genera el archivo XLSX de reservas.
type BookingExporter struct{}

// NewBookingExporter construye el exportador.
func NewBookingExporter() *BookingExporter { return &BookingExporter{} }

var bookingHeaders = []string{
	"Número", "Cliente", "Vehículo", "Conductor", "Recogida", "Entrega",
	"Dirección recogida", "Dirección entrega", "Carga", "Notas", "Regla recurrencia",
}

// Export escribe las reservas en una hoja "Reservas" y devuelve los bytes del
// archivo. El orden de las filas es el del listado recibido.
func (e *BookingExporter) Export(bookings []dto.BookingResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reservas"
	f.SetSheetName(f.GetSheetName(0), sheet)

	if err := f.SetSheetRow(sheet, "A1", &bookingHeaders); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}
	for i, b := range bookings {
		rowValues := []any{
			b.BookingNumber, b.CustomerID, b.VehicleID, b.DriverID,
			b.PickupDate, b.DeliveryDate, b.PickupAddress, b.DeliveryAddress,
			b.CargoDescription, b.Notes, b.RecurringRuleID,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &rowValues); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
