package providers

import "context"

// Indexer meldet geänderte URLs an einen externen Indexierungsdienst.
type Indexer interface {
	// Name identifiziert den Endpunkt in Ergebnissen und Logs.
	Name() string
	// Kind gruppiert Endpunkte desselben Protokolls, z.B. "indexnow".
	Kind() string
	// Enabled ist false, wenn Zugangsdaten fehlen.
	Enabled() bool
	// Submit liefert den HTTP-Status der letzten Antwort.
	Submit(ctx context.Context, urls []string, action string) (int, error)
}

// Result beschreibt das Ergebnis eines einzelnen Endpunkt-Aufrufs.
type Result struct {
	Endpoint string `json:"endpoint"`
	Status   int    `json:"status,omitempty"`
	Success  bool   `json:"success"`
	Disabled bool   `json:"disabled,omitempty"`
	Error    string `json:"error,omitempty"`
	Note     string `json:"note,omitempty"`
}
