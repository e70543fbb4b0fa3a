// Package dynamic models the Traefik dynamic configuration document and the
// intermediate label tree it is built from.
//
// Each container's labels are folded into a Node tree (a closed Leaf | Object
// | List variant), which is then projected into the typed Configuration
// schema served to Traefik. Keeping the variant closed lets the merge and
// serialization logic stay exhaustive.
package dynamic
