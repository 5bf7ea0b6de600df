// Package frame defines table frames (a column set plus ordered rows) and the
// row content contract renderers draw through. ObjectFrame holds untyped
// attribute maps; Table holds decoded records with an enumerable column type.
package frame
