// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

type (
	// Client is a connection that sends queries to the Hub.
	Client interface {
		// Init is called once by the hub goroutine when the client is registered.
		// client.Data().Hub will be set by the time this is called
		Init()

		// Close is called by (only) the hub goroutine when the client is unregistered.
		Close()

		// Send is how the server answers the client.
		Send(out outbound)

		// Destroy marks the client for destruction. It must unregister from the hub only once,
		// no matter how many times it is called. It may be called anywhere.
		Destroy()

		// Data allows the Client to be added to a double-linked list.
		Data() *ClientData
	}

	// ClientData is the data all clients must have.
	ClientData struct {
		Hub      *Hub
		Queries  int // answered queries, only touched by the hub goroutine
		Previous Client
		Next     Client
	}

	// ClientList is a doubly-linked list of Clients.
	// for client := list.First; client != nil; client = client.Data().Next {}
	ClientList struct {
		First Client
		Last  Client
		Len   int
	}
)

// Add appends client to the list. It panics if client is already in a list.
func (list *ClientList) Add(client Client) {
	data := client.Data()
	if data.Previous != nil || data.Next != nil || list.First == client {
		panic("already added")
	}

	if list.Last == nil {
		list.First = client
	} else {
		list.Last.Data().Next = client
		data.Previous = list.Last
	}

	list.Last = client
	list.Len++
}

// Remove unlinks client and returns the client that followed it.
func (list *ClientList) Remove(client Client) (next Client) {
	data := client.Data()

	switch {
	case data.Previous != nil:
		data.Previous.Data().Next = data.Next
	case list.First == client:
		list.First = data.Next
	default:
		panic("already removed")
	}

	if data.Next != nil {
		data.Next.Data().Previous = data.Previous
	} else {
		list.Last = data.Previous
	}

	list.Len--
	next = data.Next
	data.Next = nil
	data.Previous = nil
	return
}
