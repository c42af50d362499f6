package main

import "encoding/json"

// stateMessage is the frame pushed to a client on every broadcast tick.
type stateMessage struct {
	Planets []PlanetPosition `json:"planets"`
	Ship    Ship             `json:"ship"`
	Ships   []Ship           `json:"ships"`
}

// apiURLs is the payload of the static config endpoint the browser client
// fetches before opening its websocket.
type apiURLs struct {
	BackendURL   string `json:"backend_url"`
	WebsocketURL string `json:"websocket_url"`
}

// MarshalJSON renders the position as [name, [x, y]].
func (p PlanetPosition) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Name, [2]float64{p.X, p.Y}})
}
