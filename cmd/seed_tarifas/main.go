// seed_tarifas carga la tabla de tarifas desde un CSV de trayectos.
//
// Uso: go run ./cmd/seed_tarifas [ruta/tarifas.csv]
// Por defecto busca tarifas.csv en el directorio actual.
//
// Formato esperado (con cabecera, separado por ';', codificación ISO-8859-1
// como lo exportan las planillas de los operadores):
//
//	origen;destino;tipo_vehiculo;precio_base;recargo_dmt_pct
//
// Las filas se insertan con upsert por (origen, destino, tipo de vehículo),
// así que el comando es seguro de re-ejecutar.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/logistica-api/pkg/config"
)

func main() {
	csvPath := "tarifas.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) < 2 {
		fmt.Fprintln(os.Stderr, "CSV sin filas de datos")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewPriceRepository(pool)

	var ok, skipped int
	for i, rec := range records[1:] { // saltar cabecera
		row, err := parseRow(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d omitida: %v\n", i+2, err)
			skipped++
			continue
		}
		if err := repo.Upsert(row); err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d (%s → %s): %v\n", i+2, row.Origin, row.Destination, err)
			skipped++
			continue
		}
		ok++
	}

	fmt.Printf("Tarifas cargadas: %d insertadas/actualizadas, %d omitidas\n", ok, skipped)
}

func parseRow(rec []string) (*entity.PriceRow, error) {
	if len(rec) < 5 {
		return nil, fmt.Errorf("se esperaban 5 columnas, hay %d", len(rec))
	}
	origin := strings.TrimSpace(rec[0])
	destination := strings.TrimSpace(rec[1])
	vehicleType := strings.TrimSpace(rec[2])
	if origin == "" || destination == "" || vehicleType == "" {
		return nil, fmt.Errorf("origen, destino y tipo de vehículo son obligatorios")
	}

	basePrice, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
	if err != nil {
		return nil, fmt.Errorf("precio base inválido %q: %w", rec[3], err)
	}
	surcharge, err := decimal.NewFromString(strings.TrimSpace(rec[4]))
	if err != nil {
		return nil, fmt.Errorf("recargo DMT inválido %q: %w", rec[4], err)
	}
	if basePrice.IsNegative() || surcharge.IsNegative() {
		return nil, fmt.Errorf("precio y recargo deben ser no negativos")
	}

	now := time.Now().UTC()
	return &entity.PriceRow{
		ID:              uuid.NewString(),
		Origin:          origin,
		Destination:     destination,
		VehicleType:     vehicleType,
		BasePrice:       basePrice,
		DMTSurchargePct: surcharge,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
