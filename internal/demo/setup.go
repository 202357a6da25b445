package demo

import (
	"reflect"
	"time"

	"github.com/toyz/axonbind/pkg/axon"
)

// App is the registered demo application
type App struct {
	Registrar   *axon.Registrar
	Controllers []reflect.Type
	Users       *UserController
}

// Setup declares the demo controllers on a fresh store and type registry
// and registers them. opts are applied after the store and registry, so a
// logger or observer can be supplied.
func Setup(opts ...axon.RegistrarOption) (*App, error) {
	store := axon.NewStore()
	types := axon.NewTypeRegistry()

	if err := declare(store); err != nil {
		return nil, err
	}
	if err := axon.RegisterForm[CreateUser](types, store, "CreateUser"); err != nil {
		return nil, err
	}

	r := axon.NewRegistrar(append([]axon.RegistrarOption{
		axon.WithStore(store),
		axon.WithTypeRegistry(types),
	}, opts...)...)

	users := NewUserController()
	if err := axon.RegisterControllerInstance(r, "/users", users); err != nil {
		return nil, err
	}
	health := &HealthController{started: time.Now()}
	if err := axon.RegisterControllerInstance(r, "/health", health); err != nil {
		return nil, err
	}

	return &App{
		Registrar:   r,
		Controllers: []reflect.Type{axon.TypeOf[UserController](), axon.TypeOf[HealthController]()},
		Users:       users,
	}, nil
}

func declare(store *axon.Store) error {
	if err := axon.Annotate[CreateUser](store).Declare(
		"axon::field name Name string",
		"axon::field email Email string",
		"axon::field admin Admin bool",
	); err != nil {
		return err
	}

	users := axon.Annotate[UserController](store)
	users.Method("List").Get("/")
	users.Method("Search").Get("/search").
		QueryParam(0, "q", axon.TypeString).
		QueryParam(1, "limit", axon.TypeInteger)
	users.Method("ByToken").Get("/me").HeaderParam(0, "X-Api-Token", axon.TypeUUID)
	if err := users.Method("Get").Declare(
		"//axon::route GET /:id",
		"//axon::param 0 route id int",
	); err != nil {
		return err
	}
	if err := users.Method("FindByName").Declare(
		"//axon::route GET /:id",
		"//axon::param 0 route id string",
	); err != nil {
		return err
	}
	if err := users.Method("Create").Declare(
		"//axon::route POST /",
		"//axon::param 0 body CreateUser",
	); err != nil {
		return err
	}
	users.Method("Rename").Patch("/:id").
		RouteParam(0, "id", axon.TypeInteger).
		BodyParam(1, "name", axon.TypeString)
	users.Method("Delete").Delete("/:id").RouteParam(0, "id", axon.TypeInteger)

	health := axon.Annotate[HealthController](store)
	health.Method("Health").Get("/")
	health.Method("Ping").Get("/ping")
	return nil
}
