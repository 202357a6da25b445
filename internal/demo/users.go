// Package demo is the sample application served by the axon command. It
// shows route, query, header and body bindings, form rehydration and
// fallthrough between handlers sharing a route.
package demo

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/toyz/axonbind/pkg/axon"
)

// User is a stored user
type User struct {
	ID    int       `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Admin bool      `json:"admin"`
	Token uuid.UUID `json:"token"`
}

// CreateUser is the body accepted when creating a user. It is rehydrated
// from the request body by the CreateUser form type.
type CreateUser struct {
	Name  string
	Email string
	Admin bool
}

// UserController serves /users
type UserController struct {
	mu     sync.RWMutex
	users  map[int]User
	nextID int
}

// NewUserController creates a controller seeded with users
func NewUserController(seed ...User) *UserController {
	c := &UserController{users: make(map[int]User), nextID: 1}
	for _, u := range seed {
		c.users[u.ID] = u
		if u.ID >= c.nextID {
			c.nextID = u.ID + 1
		}
	}
	return c
}

// List returns every user ordered by id
func (c *UserController) List() []User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]User, 0, len(c.users))
	for _, u := range c.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the user with id
func (c *UserController) Get(id int) (User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, ok := c.users[id]
	if !ok {
		return User{}, axon.ErrNotFound("user not found")
	}
	return u, nil
}

// FindByName serves /users/:id when the segment is not an integer
func (c *UserController) FindByName(name string) (User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, u := range c.users {
		if strings.EqualFold(u.Name, name) {
			return u, nil
		}
	}
	return User{}, axon.ErrNotFound("no user named " + name)
}

// ByToken looks a user up by API token
func (c *UserController) ByToken(token uuid.UUID) (User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, u := range c.users {
		if u.Token == token {
			return u, nil
		}
	}
	return User{}, axon.ErrNotFound("unknown token")
}

// Search filters users by name prefix, returning at most limit users
func (c *UserController) Search(prefix string, limit int) ([]User, error) {
	if limit <= 0 {
		return nil, axon.ErrBadRequest("limit must be positive")
	}
	var out []User
	for _, u := range c.List() {
		if strings.HasPrefix(strings.ToLower(u.Name), strings.ToLower(prefix)) {
			out = append(out, u)
			if len(out) == limit {
				break
			}
		}
	}
	if out == nil {
		out = []User{}
	}
	return out, nil
}

// Create stores a new user
func (c *UserController) Create(in CreateUser) *axon.Response {
	c.mu.Lock()
	defer c.mu.Unlock()

	u := User{ID: c.nextID, Name: in.Name, Email: in.Email, Admin: in.Admin, Token: uuid.New()}
	c.users[u.ID] = u
	c.nextID++
	return axon.Created(u)
}

// Rename changes a user's name from a body field
func (c *UserController) Rename(id int, name string) (User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, ok := c.users[id]
	if !ok {
		return User{}, axon.ErrNotFound("user not found")
	}
	u.Name = name
	c.users[id] = u
	return u, nil
}

// Delete removes a user
func (c *UserController) Delete(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.users[id]; !ok {
		return axon.ErrNotFound("user not found")
	}
	delete(c.users, id)
	return nil
}
