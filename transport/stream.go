/*
 fleetd, a lightweight workload orchestrator.
 Copyright (C) 2024 fleetd contributors

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as published by
 the Free Software Foundation, either version 3 of the License, or
 (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package transport

import (
	"github.com/gorilla/websocket"
)

// wsStream adapts a gorilla/websocket connection to
// sourcegraph/jsonrpc2's ObjectStream, so jsonrpc2.Conn can frame
// requests and notifications over it without knowing it is a
// websocket underneath.
type wsStream struct {
	conn *websocket.Conn
}

func newWSStream(conn *websocket.Conn) wsStream {
	return wsStream{conn: conn}
}

func (s wsStream) WriteObject(obj any) error {
	return s.conn.WriteJSON(obj)
}

func (s wsStream) ReadObject(v any) error {
	return s.conn.ReadJSON(v)
}

func (s wsStream) Close() error {
	return s.conn.Close()
}
