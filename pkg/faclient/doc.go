// Package faclient provides the primary entry point for constructing a
// FlashArray REST client that implements the flasharray.Client interface.
//
// It layers endpoint normalization, credential validation, and REST version
// discovery on top of the resource interfaces and types defined in the
// flasharray package. Most applications should import faclient to build a
// client, then use the returned flasharray.Client to access resource-specific
// clients, for example Volumes(), Hosts(), Connections(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/arraykit-io/flasharray-client/pkg/faclient"
//	  "github.com/arraykit-io/flasharray-client/pkg/flasharray"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // With a long-lived API token. The client exchanges it for a session
//	  // token at the login endpoint and logs out on Close.
//	  cli, err := faclient.New(ctx, &flasharray.Config{
//	    Endpoint: "array01.example.com",
//	    APIToken: "d0e2a4b6-...",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer func() { _ = cli.Close(ctx) }()
//
//	  // Or with an identity assertion. The client signs an RS256 assertion
//	  // and exchanges it at the array's oauth2 endpoint for a bearer token.
//	  cli, err = faclient.New(ctx, &flasharray.Config{
//	    Endpoint:      "array01.example.com",
//	    Issuer:        "automation",
//	    Subject:       "svc-backup",
//	    KeyID:         "key-1",
//	    PrivateKeyPEM: pemBytes,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the flasharray.Client interface
//	  vols, err := cli.Volumes().List(ctx, flasharray.NewQueryParams().WithLimit(10))
//	  if err != nil { log.Fatal(err) }
//	  _ = vols
//	}
//
// # Version discovery
//
// Unless Config.APIVersion pins a REST version, New queries the array's
// unauthenticated /api/api_version endpoint and uses the newest version the
// array reports.
//
// # Helpers
//
// The package also provides convenience constructors NewWithAPIToken and
// NewWithIdentityAssertion that wrap New with the appropriate configuration.
package faclient
