package projection

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

var ledgerHeader = []string{
	"index",
	"generated_gb",
	"tests_run",
	"tier1_gb",
	"tier2_gb",
	"stored_gb",
	"tier1_storage_cost",
	"tier2_storage_cost",
	"retrieval_cost",
	"request_cost",
	"transfer_cost",
	"reaccess_cost",
	"total_cost",
	"cum_cost",
}

func WriteLedgerCSV(path string, ledger []StepRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteLedger(f, ledger); err != nil {
		return err
	}
	return f.Close()
}

// WriteLedger writes the ledger as CSV with a header row.
func WriteLedger(out io.Writer, ledger []StepRow) error {
	w := csv.NewWriter(out)
	if err := w.Write(ledgerHeader); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtFloat(r.GeneratedGB),
			fmtFloat(r.TestsRun),
			fmtFloat(r.Tier1GB),
			fmtFloat(r.Tier2GB),
			fmtFloat(r.StoredGB),
			fmtFloat(r.Tier1StorageCost),
			fmtFloat(r.Tier2StorageCost),
			fmtFloat(r.RetrievalCost),
			fmtFloat(r.RequestCost),
			fmtFloat(r.TransferCost),
			fmtFloat(r.ReaccessCost),
			fmtFloat(r.TotalCost),
			fmtFloat(r.CumCost),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
