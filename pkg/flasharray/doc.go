// Package flasharray provides types, interfaces, and helpers for working
// with a FlashArray-style storage array management REST API.
//
// # Overview
//
// The flasharray package defines the domain types (e.g., Volume, Host, Pod,
// ProtectionGroup) and the interfaces for resource-oriented clients (e.g.,
// VolumesClient, HostsClient). A concrete implementation of these clients is
// provided by the faclient package, which wires configuration, transport,
// authentication, and REST version discovery. Most consumers should import
// faclient to construct a client and then interact with the resource client
// interfaces exposed here.
//
// Getting a client
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
//	  cli, err := faclient.New(ctx, &flasharray.Config{
//	    Endpoint: "https://array01.example.com",
//	    APIToken: "f4c4ed2c-...-b1a2",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close(ctx)
//
//	  vols, err := cli.Volumes().List(ctx, flasharray.NewQueryParams().WithLimit(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = vols
//	}
//
// # References
//
// Bulk and filter operations accept Reference values carrying an id and/or a
// name. ResolveReferences turns a reference collection into the concrete
// ids/names query parameter an endpoint expects, so callers never branch on
// which attribute they happen to hold.
//
// # Queries and pagination
//
// Use QueryParams to express list options (filter, sort, limit, offset,
// continuation_token, total_item_count, total_only). List calls return a
// ListResponse whose Items iterator spans page fetches transparently:
//
//	resp, err := cli.Volumes().List(ctx, nil)
//	if err != nil { /* handle error */ }
//	for resp.Items.HasNext() {
//	  vol, err := resp.Items.Next()
//	  if err != nil { break }
//	  _ = vol
//	}
//
// Iteration failures are distinct from exhaustion: Next returns
// ErrNoMoreItems when the collection ends, and any other error when a page
// fetch fails.
//
// # Errors
//
// Terminal API failures are represented by APIError and ErrorResponse,
// returned as error values; branch on them with errors.As or the helpers
// IsNotFound, IsUnauthorized, and IsRateLimited. Credential-exchange and
// construction problems surface as *AuthenticationError and
// *ConfigurationError instead, since no call could have succeeded.
//
// # Caching
//
// A pluggable Cache abstraction (memory, NATS KV, or none) lets the
// transport layer serve repeated GETs without a round-trip; see CacheConfig.
package flasharray
