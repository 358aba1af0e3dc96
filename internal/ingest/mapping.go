// Package ingest maps heterogeneous tabular data onto the canonical record
// schema. It accepts rows plus a column mapping (explicit or auto-detected),
// validates what it parses, and hands fully-formed records to the caller;
// it never mutates a store itself.
package ingest

import (
	"strings"

	"github.com/certiflow/certiflow/internal/common"
	"github.com/certiflow/certiflow/internal/model"
)

// Canonical field names. A Mapping resolves these to source column indices.
const (
	FieldDate        = "date"
	FieldClient      = "client"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldDays        = "days"
	FieldAmount      = "amount"
	FieldMissionFee  = "missionFee"
	FieldAuditorCost = "auditorCost"
	FieldStatus      = "status"
)

// Mapping resolves canonical field names to zero-based column indices.
type Mapping map[string]int

// Table is an ordered slice of raw rows under a header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column synonyms, checked in order, lowercase. The French spellings come
// from the workbooks this tool historically imported.
var (
	dateSynonyms        = []string{"date", "date audit", "date d'audit"}
	clientSynonyms      = []string{"client", "customer", "nom", "société", "societe", "entreprise", "company"}
	schemeSynonyms      = []string{"référentiel", "referentiel", "programme", "norme", "standard", "scheme", "category", "catégorie", "categorie"}
	serviceSynonyms     = []string{"type", "service", "prestation", "category", "catégorie", "categorie"}
	chargeCatSynonyms   = []string{"catégorie", "categorie", "category", "type"}
	descriptionSynonyms = []string{"description", "libellé", "libelle", "détail", "detail"}
	daysSynonyms        = []string{"durée", "duree", "days", "jours", "jour"}
	amountSynonyms      = []string{"montant", "amount", "facturation", "chiffre", "prix", "tarif", "ca"}
	missionFeeSynonyms  = []string{"frais", "mission", "fee"}
	auditorCostSynonyms = []string{"coût", "cout", "auditeur", "auditor", "cost"}
	statusSynonyms      = []string{"statut", "status", "état", "etat"}
)

// DetectInvoiceMapping auto-detects the column mapping for an invoice table.
// Date, client and amount are required; a MappingError listing every missing
// required field is returned when any of them cannot be resolved.
func DetectInvoiceMapping(header []string, kind model.InvoiceKind) (Mapping, error) {
	category := schemeSynonyms
	if kind == model.KindOther {
		category = serviceSynonyms
	}

	m := Mapping{}
	assign(m, header, FieldDate, dateSynonyms)
	assign(m, header, FieldClient, clientSynonyms)
	assign(m, header, FieldCategory, category)
	assign(m, header, FieldDescription, descriptionSynonyms)
	assign(m, header, FieldDays, daysSynonyms)
	assign(m, header, FieldAmount, amountSynonyms)
	assign(m, header, FieldMissionFee, missionFeeSynonyms)
	assign(m, header, FieldAuditorCost, auditorCostSynonyms)
	assign(m, header, FieldStatus, statusSynonyms)

	if err := requireFields(m, FieldDate, FieldClient, FieldAmount); err != nil {
		return nil, err
	}
	return m, nil
}

// DetectChargeMapping auto-detects the column mapping for a charge table.
// Date and amount are required.
func DetectChargeMapping(header []string) (Mapping, error) {
	m := Mapping{}
	assign(m, header, FieldDate, dateSynonyms)
	assign(m, header, FieldCategory, chargeCatSynonyms)
	assign(m, header, FieldDescription, descriptionSynonyms)
	assign(m, header, FieldAmount, amountSynonyms)
	assign(m, header, FieldStatus, statusSynonyms)

	if err := requireFields(m, FieldDate, FieldAmount); err != nil {
		return nil, err
	}
	return m, nil
}

// assign resolves one canonical field against the header. Synonyms are tried
// in order; the first column containing (or contained in) a synonym wins.
// Columns already claimed by another field are skipped.
func assign(m Mapping, header []string, field string, synonyms []string) {
	claimed := make(map[int]bool, len(m))
	for _, idx := range m {
		claimed[idx] = true
	}

	for _, syn := range synonyms {
		for i, col := range header {
			if claimed[i] {
				continue
			}
			c := strings.ToLower(strings.TrimSpace(col))
			if c == "" {
				continue
			}
			if strings.Contains(c, syn) || strings.Contains(syn, c) {
				m[field] = i
				return
			}
		}
	}
}

func requireFields(m Mapping, fields ...string) error {
	var missing []string
	for _, f := range fields {
		if _, ok := m[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &common.MappingError{Missing: missing}
	}
	return nil
}
