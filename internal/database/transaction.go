package database

import (
	"context"
	"fmt"
	"strings"
)

// TxBuilder assembles a multi-statement SurrealQL transaction. Each Add
// rewrites the statement's variables into a per-statement namespace
// ($amount becomes $v1_amount, $v2_amount, ...) so statements built by
// different repositories can share a batch without colliding.
type TxBuilder struct {
	statements []string
	vars       map[string]interface{}
	varCounter int
}

// NewTxBuilder creates an empty transaction builder.
func NewTxBuilder() *TxBuilder {
	return &TxBuilder{vars: make(map[string]interface{})}
}

// Add appends a statement, rewriting its variables into a fresh namespace.
// The returned map records each original name's namespaced form.
func (tb *TxBuilder) Add(query string, vars map[string]interface{}) map[string]string {
	renamed := make(map[string]string, len(vars))

	for name, value := range vars {
		tb.varCounter++
		namespaced := fmt.Sprintf("v%d_%s", tb.varCounter, name)

		query = strings.ReplaceAll(query, "$"+name, "$"+namespaced)
		tb.vars[namespaced] = value
		renamed[name] = namespaced
	}

	tb.statements = append(tb.statements, query)
	return renamed
}

// AddRaw appends a statement verbatim, with no variable rewriting.
func (tb *TxBuilder) AddRaw(query string) {
	tb.statements = append(tb.statements, query)
}

// Build wraps the accumulated statements in a transaction block and
// returns the combined query with its merged variables. An empty builder
// yields an empty query.
func (tb *TxBuilder) Build() (string, map[string]interface{}) {
	if len(tb.statements) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range tb.statements {
		sb.WriteString(stmt)
		if !strings.HasSuffix(strings.TrimSpace(stmt), ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	return sb.String(), tb.vars
}

// ExecuteTransaction runs a built transaction against the database.
// An empty builder is a no-op.
func ExecuteTransaction(ctx context.Context, db Database, tb *TxBuilder) ([]interface{}, error) {
	query, vars := tb.Build()
	if query == "" {
		return nil, nil
	}
	return db.Query(ctx, query, vars)
}

// AtomicBatch collects queries that must commit together, such as marking
// a booking paid while crediting the caregiver's ledger. Add calls chain;
// Execute runs the whole batch as one transaction.
type AtomicBatch struct {
	queries []batchQuery
}

type batchQuery struct {
	query string
	vars  map[string]interface{}
}

// NewAtomicBatch creates an empty batch.
func NewAtomicBatch() *AtomicBatch {
	return &AtomicBatch{}
}

// Add appends a query to the batch and returns the batch for chaining.
func (ab *AtomicBatch) Add(query string, vars map[string]interface{}) *AtomicBatch {
	ab.queries = append(ab.queries, batchQuery{query: query, vars: vars})
	return ab
}

// Execute commits the batch atomically. An empty batch is a no-op.
func (ab *AtomicBatch) Execute(ctx context.Context, db Database) error {
	if len(ab.queries) == 0 {
		return nil
	}

	tb := NewTxBuilder()
	for _, q := range ab.queries {
		tb.Add(q.query, q.vars)
	}

	_, err := ExecuteTransaction(ctx, db, tb)
	return err
}

// Len reports the number of queued queries.
func (ab *AtomicBatch) Len() int {
	return len(ab.queries)
}
