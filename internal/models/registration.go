package models

// SheetHeaders is the fixed header row written to every area sheet. Column
// order is load-bearing: the ticket number must stay in column A because the
// append acknowledgement math rewrites the first cell of the inserted row.
var SheetHeaders = []string{
	"Senha",
	"Nome",
	"Telefone",
	"Rede Social",
	"E-mail",
	"Bairro",
	"Data e Hora de Registro",
	"Data e Hora de Atendimento",
}

// Area is a named queue for which tickets are issued independently.
// Loaded from the areas configuration sheet; read-only here.
type Area struct {
	Name       string `json:"name"`
	Sheet      string `json:"sheet"` // destination tab; defaults to Name
	Active     bool   `json:"active"`
	MaxTickets int    `json:"max_tickets,omitempty"` // 0 = no quota
}

// Registration is one issued ticket: an attendee snapshot plus the sequential
// number assigned from the row position in the area's sheet.
type Registration struct {
	Area         string `json:"area"`
	Sheet        string `json:"sheet"`
	Number       int    `json:"number"`
	Name         string `json:"name"`          // uppercased
	Phone        string `json:"phone"`         // formatted (NN) NNNNN-NNNN
	Neighborhood string `json:"neighborhood"`
	SocialHandle string `json:"social_handle,omitempty"`
	Email        string `json:"email,omitempty"`
	RegisteredAt string `json:"registered_at"` // local time, 02/01/2006 15:04:05
}

// Row returns the spreadsheet row for the registration in SheetHeaders order.
// The leading ticket-number cell is left empty; it is rewritten in place once
// the append acknowledgement reveals the row position. The final service
// timestamp column is always written blank and filled by the attendance step.
func (r Registration) Row() []string {
	return []string{
		"",
		r.Name,
		r.Phone,
		r.SocialHandle,
		r.Email,
		r.Neighborhood,
		r.RegisteredAt,
		"",
	}
}

// QuotaExcess reports a ticket issued past its area's configured maximum.
// The registration stays persisted; only document generation is withheld.
type QuotaExcess struct {
	Area   string `json:"area"`
	Limit  int    `json:"limit"`
	Number int    `json:"number"`
}
