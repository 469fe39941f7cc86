// seed genera un script SQL para poblar el catálogo de repuestos a partir de
// un CSV exportado del sistema de mantenimiento anterior (codificación Windows-1252,
// separado por punto y coma).
//
// Columnas esperadas: part_number;name;category;location;quantity;min_stock;unit_price;department_code
//
// Uso: go run ./cmd/seed [ruta/repuestos.csv]
// Por defecto busca repuestos.csv en el directorio actual.
// Escribe: scripts/seed_parts.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type partRow struct {
	partNumber string
	name       string
	category   string
	location   string
	quantity   int64
	minStock   int64
	unitPrice  string
	deptCode   string
}

func main() {
	csvPath := "repuestos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El export del sistema anterior viene en Windows-1252
	r := csv.NewReader(transform.NewReader(f, charmap.Windows1252.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = 8

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var parts []partRow
	for i, rec := range records {
		if i == 0 && strings.EqualFold(rec[0], "part_number") {
			continue // cabecera
		}
		qty, err := strconv.ParseInt(strings.TrimSpace(rec[4]), 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d: cantidad inválida %q\n", i+1, rec[4])
			os.Exit(1)
		}
		minStock, err := strconv.ParseInt(strings.TrimSpace(rec[5]), 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d: mínimo inválido %q\n", i+1, rec[5])
			os.Exit(1)
		}
		price := strings.TrimSpace(strings.ReplaceAll(rec[6], ",", "."))
		if _, err := strconv.ParseFloat(price, 64); err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d: precio inválido %q\n", i+1, rec[6])
			os.Exit(1)
		}
		parts = append(parts, partRow{
			partNumber: strings.TrimSpace(rec[0]),
			name:       strings.TrimSpace(rec[1]),
			category:   strings.TrimSpace(rec[2]),
			location:   strings.TrimSpace(rec[3]),
			quantity:   qty,
			minStock:   minStock,
			unitPrice:  price,
			deptCode:   strings.TrimSpace(rec[7]),
		})
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "scripts", "seed_parts.sql")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial de repuestos\n")
	out.WriteString("-- Generado desde el export del sistema anterior (cmd/seed)\n\n")

	for _, p := range parts {
		status := "in_stock"
		if p.quantity == 0 {
			status = "out_of_stock"
		} else if p.quantity <= p.minStock {
			status = "low_stock"
		}
		fmt.Fprintf(out, "INSERT INTO parts (id, part_number, name, category, location, quantity, min_stock_level, unit_price, total_value, stock_status, department_id, status)\n")
		fmt.Fprintf(out, "SELECT gen_random_uuid(), '%s', '%s', '%s', '%s', %d, %d, %s, %s * %d, '%s', id, 'active' FROM departments WHERE code = '%s'\n",
			escapeSQL(p.partNumber), escapeSQL(p.name), escapeSQL(p.category), escapeSQL(p.location),
			p.quantity, p.minStock, p.unitPrice, p.unitPrice, p.quantity, status, escapeSQL(p.deptCode))
		out.WriteString("ON CONFLICT (part_number) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category, location = EXCLUDED.location;\n")
	}

	fmt.Printf("Generado %s: %d repuestos\n", outPath, len(parts))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
