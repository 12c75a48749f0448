// Package value provides a format-neutral model of decoded API description
// documents.
//
// A [Value] is a tagged union over the six JSON kinds: null, bool, number,
// string, array and object. Objects keep their members in source order so a
// document can be decoded, filtered and written back without reshuffling it.
//
// # Decoding and encoding
//
// [Decode] accepts JSON or YAML (YAML is a superset of JSON):
//
//	doc, err := value.Decode(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := value.Marshal(doc, value.DetectFormat("openapi.yaml", data))
//
// Numbers keep their literal text, so 1.0 stays 1.0 and large integers are not
// rounded through float64.
//
// # Traversal
//
// [Walk] visits every nested value uniformly, whatever its position in the
// document. [Equal] compares two values structurally, ignoring object member
// order.
package value
