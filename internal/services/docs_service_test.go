package services

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestBuildETicketPDF(t *testing.T) {
	data := ticketDocData{
		TicketID:   7,
		TicketType: "VIP",
		Status:     "paid",
		Price:      150.50,
		Holder:     "Alice Doe",
		Email:      "a@b.c",
		EventTitle: "Concert",
		Location:   "Main Hall",
		StartTime:  time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC),
		SeatLabel:  "B12",
	}

	pdf, filename, err := buildETicketPDF(data)
	if err != nil {
		t.Fatalf("buildETicketPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("empty PDF output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
	if filename != "ETICKET_7_Alice_Doe.pdf" {
		t.Fatalf("unexpected filename: %q", filename)
	}
}

func TestBuildETicketPDFEmptyHolder(t *testing.T) {
	pdf, filename, err := buildETicketPDF(ticketDocData{TicketID: 1})
	if err != nil {
		t.Fatalf("buildETicketPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("empty PDF output")
	}
	if !strings.HasPrefix(filename, "ETICKET_1_ticket") {
		t.Fatalf("unexpected fallback filename: %q", filename)
	}
}
