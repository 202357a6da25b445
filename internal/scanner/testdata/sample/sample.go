package sample

import "github.com/toyz/axonbind/pkg/axon"

type Form struct {
	Name string
}

type Controller struct{}

func (Controller) Get(id int) int { return id }

var lines = []string{"axon::route GET /dynamic"}

func Declarations() {
	store := axon.NewStore()

	axon.Annotate[Form](store).MustDeclare(
		"axon::field name Name string",
	)
	_ = axon.Annotate[Form](store).Declare(
		"axon::route GET /",
	)

	m := axon.Annotate[Controller](store).Method("Get")
	_ = m.Declare(
		"//axon::route GET /:id",
		"//axon::param 0 route id int",
		"axon::route FETCH /",
		"axon::param 0 cookie id int",
		"axon::route GET /users/{id",
		"axon::param zero route id int",
	)
	_ = m.Declare(lines...)
}

type other struct{}

func (other) Declare(lines ...string) {}

func Unrelated() {
	other{}.Declare("not checked")
}
