package authclient_test

import (
	"context"
	"fmt"
	"log"

	"github.com/artemevsevev/finam/authclient"
)

// staticIssuer stands in for the gRPC-backed tradeapi.Issuer.
type staticIssuer struct{}

func (staticIssuer) IssueToken(_ context.Context, _ string) (string, error) {
	return "example-token", nil
}

// Example demonstrates constructing a Manager and reading the current token.
func Example() {
	ctx := context.Background()

	manager, err := authclient.NewManager(ctx, staticIssuer{}, "my-api-secret")
	if err != nil {
		log.Fatal(err)
	}
	defer manager.Close()

	fmt.Println(manager.Token())
	// Output: example-token
}

// ExampleManager_UnaryClientInterceptor demonstrates wiring the manager into
// a gRPC client so every call carries the current token.
func ExampleManager_UnaryClientInterceptor() {
	ctx := context.Background()

	manager, err := authclient.NewManager(ctx, staticIssuer{}, "my-api-secret")
	if err != nil {
		log.Fatal(err)
	}
	defer manager.Close()

	_ = manager.UnaryClientInterceptor()
	_ = manager.StreamClientInterceptor()

	fmt.Println("interceptors configured")
	// Output: interceptors configured
}

// ExampleIssuerFunc demonstrates adapting a function to the TokenIssuer interface.
func ExampleIssuerFunc() {
	issuer := authclient.IssuerFunc(func(_ context.Context, secret string) (string, error) {
		return "token-for-" + secret, nil
	})

	manager, err := authclient.NewManager(context.Background(), issuer, "demo")
	if err != nil {
		log.Fatal(err)
	}
	defer manager.Close()

	fmt.Println(manager.Token())
	// Output: token-for-demo
}
