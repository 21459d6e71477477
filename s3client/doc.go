// Package s3client is a small client for S3-compatible object storage that
// builds and signs its own requests.
//
// The package has two layers:
//
//   - [Builder] turns a verb, bucket and key into a signed [Request]
//     addressed as /{bucket}/{key}, with Host, Date and Authorization
//     headers. Signing is pluggable through [Signer]: [V2Signer] computes
//     AWS Signature V2 from injectable [Canonicalizer] rules, [V4Signer]
//     delegates to the AWS SDK's Signature V4 signer.
//
//   - [Client] offers Get, Put, PutStream, PutStreamSize and Delete over a
//     [Transport]. Calls return immediately; the response or a
//     [*TransportError] is delivered once to a [ResponseHandler].
//
// # Quick Start
//
//	client, err := s3client.New(s3client.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "my-access-key",
//	    SecretKey: "my-secret-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	handler, results := s3client.ResultChan()
//	if err := client.Put(ctx, "photos", "puppy.jpg", data, handler,
//	    s3client.WithContentType("image/jpeg"),
//	); err != nil {
//	    log.Fatal(err) // configuration, argument or closed-client error
//	}
//	res := <-results
//	if res.Err != nil {
//	    log.Fatal(res.Err) // transport failure
//	}
//	defer res.Response.Body.Close()
//	if err := res.Response.APIError(); err != nil {
//	    log.Fatal(err) // non-2xx answer from the server
//	}
//
// # Uploads
//
// Put sends an in-memory buffer. PutStream reads an io.Reader of unknown
// length fully into memory before sending it, so it suits small uploads
// only. PutStreamSize streams a reader of known length straight to the
// transport; the transport pulls bytes only as fast as it can write them.
//
// # Configuration
//
// Config can be filled directly, from environment variables with
// [LoadConfig], or from a decoded JSON object with [ConfigFromMap]:
//
//	S3_ACCESS_KEY         awsAccessKey        (required)
//	S3_SECRET_KEY         awsSecretKey        (required)
//	S3_ENDPOINT           s3Endpoint          (required)
//	S3_REGION             s3Region            (default us-east-1)
//	S3_SIGNATURE_VERSION  s3SignatureVersion  (v2 or v4, default v2)
//
// # Errors
//
// Configuration, argument and closed-client errors are returned
// synchronously and match [ErrConfiguration], [ErrInvalidArgument] and
// [ErrClosed] through errors.Is. Transport failures arrive at the handler and
// match [ErrTransport]. Nothing is retried.
package s3client
