package ledger

import (
	"context"

	"kakeibo/internal/core"
)

// Ports for the transaction store and taxonomy.
type (
	// TransactionAppender appends a record and returns it with its
	// assigned identifier. The store performs no validation; that is
	// the caller's responsibility.
	TransactionAppender interface {
		Append(ctx context.Context, t core.Transaction) (core.Transaction, error)
	}

	// TransactionRemover removes records matching the given identifiers.
	// Identifiers with no matching record are ignored; the returned count
	// is the number of records actually removed.
	TransactionRemover interface {
		Remove(ctx context.Context, ids ...string) (int, error)
	}

	// TransactionLister returns all current records in insertion order.
	// Callers are responsible for sorting and filtering.
	TransactionLister interface {
		List(ctx context.Context) ([]core.Transaction, error)
	}

	// TaxonomyReader provides the suggested category list for a kind.
	TaxonomyReader interface {
		Suggested(ctx context.Context, kind core.Kind) ([]string, error)
	}
)
