package dto

import "github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"

// ConnectionCreate is the insert shape for connections. A client may
// supply its own ID to keep identifiers aligned with an external system.
type ConnectionCreate struct {
	ID           uint   `json:"id,omitempty"`
	Name         string `json:"name"`
	Key          string `json:"key,omitempty"`
	Dialect      string `json:"dialect"`
	Host         string `json:"host,omitempty"`
	Port         int    `json:"port,omitempty"`
	DatabaseName string `json:"database_name,omitempty"`
	Username     string `json:"username,omitempty"`
	DSN          string `json:"dsn,omitempty"`
}

func (c ConnectionCreate) Entity() domain.Connection {
	conn := domain.Connection{
		Name:         c.Name,
		Key:          c.Key,
		Dialect:      c.Dialect,
		Host:         c.Host,
		Port:         c.Port,
		DatabaseName: c.DatabaseName,
		Username:     c.Username,
		DSN:          c.DSN,
	}
	conn.ID = c.ID
	return conn
}

// ConnectionUpdate is the sparse patch shape for connections.
type ConnectionUpdate struct {
	Name         *string `json:"name"`
	Dialect      *string `json:"dialect"`
	Host         *string `json:"host"`
	Port         *int    `json:"port"`
	DatabaseName *string `json:"database_name"`
	Username     *string `json:"username"`
	DSN          *string `json:"dsn"`
}

func (u ConnectionUpdate) Changes() map[string]any {
	ch := map[string]any{}
	if u.Name != nil {
		ch["name"] = *u.Name
	}
	if u.Dialect != nil {
		ch["dialect"] = *u.Dialect
	}
	if u.Host != nil {
		ch["host"] = *u.Host
	}
	if u.Port != nil {
		ch["port"] = *u.Port
	}
	if u.DatabaseName != nil {
		ch["database_name"] = *u.DatabaseName
	}
	if u.Username != nil {
		ch["username"] = *u.Username
	}
	if u.DSN != nil {
		ch["dsn"] = *u.DSN
	}
	return ch
}

// ConnectionResponse never carries the DSN: credentials stay server-side.
// La réponse n'expose jamais le DSN : les identifiants restent côté serveur.
type ConnectionResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Key          string `json:"key"`
	Dialect      string `json:"dialect"`
	Host         string `json:"host,omitempty"`
	Port         int    `json:"port,omitempty"`
	DatabaseName string `json:"database_name,omitempty"`
	Username     string `json:"username,omitempty"`
	AuditFields
}

// ConnectionToDTO converts domain.Connection to ConnectionResponse.
func ConnectionToDTO(c *domain.Connection) ConnectionResponse {
	return ConnectionResponse{
		ID:           c.ID,
		Name:         c.Name,
		Key:          c.Key,
		Dialect:      c.Dialect,
		Host:         c.Host,
		Port:         c.Port,
		DatabaseName: c.DatabaseName,
		Username:     c.Username,
		AuditFields:  auditOf(c.CatalogModel),
	}
}

// ConnectionTestResult reports the outcome of a reachability probe.
type ConnectionTestResult struct {
	ConnectionID uint   `json:"connection_id"`
	Reachable    bool   `json:"reachable"`
	Error        string `json:"error,omitempty"`
}
