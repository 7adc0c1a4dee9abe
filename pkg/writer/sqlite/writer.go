// Package sqlite provides SQLite database writing for batch results
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ChrisMcGann/PepMass/pkg/core"
)

const (
	// Date format for HeaderTable (ISO 8601)
	headerDateFormat = "2006-01-02"
	// schemaVersion is stored in HeaderTable.version
	schemaVersion = 1
)

// RunInfo describes a batch run for the HeaderTable.
type RunInfo struct {
	MassType    core.MassType
	SourceFile  string
	Description string
	Precision   int // decimal places stored for masses; 0 stores full precision
}

// Writer handles writing peptides to SQLite database files
type Writer struct {
	db          *sql.DB
	outputPath  string
	runID       string
	info        RunInfo
	peptideStmt *sql.Stmt
	peptideID   int
	skipped     int
	closed      bool
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string, info RunInfo) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		runID:      uuid.NewString(),
		info:       info,
		peptideID:  1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// RunID returns the identifier recorded in HeaderTable for this run.
func (w *Writer) RunID() string {
	return w.runID
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS PeptideTable (
		PeptideId INTEGER PRIMARY KEY,
		RunId TEXT,
		Name TEXT,
		Description TEXT,
		Sequence TEXT,
		Length INTEGER,
		Formula TEXT,
		Modifications TEXT,
		MassType TEXT,
		MolecularWeight DOUBLE,
		MZ1 DOUBLE,
		MZ2 DOUBLE,
		MZ3 DOUBLE,
		Composition TEXT,
		SourceFile TEXT
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		RunId TEXT,
		CreationDate TEXT,
		MassType TEXT,
		SourceFile TEXT,
		Description TEXT,
		PeptideCount INTEGER,
		SkippedCount INTEGER
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.peptideStmt, err = w.db.Prepare(`
		INSERT INTO PeptideTable (
			PeptideId, RunId, Name, Description, Sequence, Length, Formula,
			Modifications, MassType, MolecularWeight, MZ1, MZ2, MZ3,
			Composition, SourceFile
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare peptide statement: %w", err)
	}

	return nil
}

// WritePeptide writes a single evaluated peptide to the database
func (w *Writer) WritePeptide(p *core.Peptide) error {
	if w.closed {
		return fmt.Errorf("writer for %s is closed", w.outputPath)
	}
	if err := p.Validate(); err != nil {
		return err
	}

	_, err := w.peptideStmt.Exec(
		w.peptideID,                     // PeptideId
		w.runID,                         // RunId
		p.Name(),                        // Name
		p.Description,                   // Description
		p.Sequence,                      // Sequence
		len(p.Sequence),                 // Length
		p.Formula,                       // Formula
		core.ModString(p.Modifications), // Modifications
		string(p.MassType),              // MassType
		w.round(p.MolecularWeight),      // MolecularWeight
		w.round(p.MZByCharge[1]),        // MZ1
		w.round(p.MZByCharge[2]),        // MZ2
		w.round(p.MZByCharge[3]),        // MZ3
		p.Composition.String(),          // Composition
		p.SourceFile,                    // SourceFile
	)
	if err != nil {
		return fmt.Errorf("failed to insert peptide: %w", err)
	}

	w.peptideID++
	return nil
}

// Skip records that an input record was not written.
func (w *Writer) Skip() {
	w.skipped++
}

// Count returns the number of peptides written so far.
func (w *Writer) Count() int {
	return w.peptideID - 1
}

func (w *Writer) round(v float64) float64 {
	if w.info.Precision <= 0 {
		return v
	}
	return core.RoundFloat(v, w.info.Precision)
}

// Finalize writes the header table and closes the database.
// Calling it more than once is a no-op.
func (w *Writer) Finalize() error {
	if w.closed {
		return nil
	}
	w.closed = true

	// Write HeaderTable
	_, err := w.db.Exec(`
		INSERT INTO HeaderTable (version, RunId, CreationDate, MassType, SourceFile, Description, PeptideCount, SkippedCount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, schemaVersion, w.runID, time.Now().Format(headerDateFormat), string(w.info.MassType),
		w.info.SourceFile, w.info.Description, w.Count(), w.skipped)
	if err != nil {
		w.closeAll()
		return fmt.Errorf("failed to insert header: %w", err)
	}

	return w.closeAll()
}

func (w *Writer) closeAll() error {
	// Close prepared statements
	if w.peptideStmt != nil {
		w.peptideStmt.Close()
	}

	// Close database
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close releases the database. Unless Finalize ran first, no HeaderTable
// row is written, so an interrupted run is distinguishable from a complete one.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.closeAll()
}
