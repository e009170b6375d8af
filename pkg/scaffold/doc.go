/*
Package scaffold materializes a project skeleton from a list of relative paths.

Each path is classified by its final component: a component with a suffix
("config.yaml") becomes an empty file, anything else ("components",
".gitkeep", "Dockerfile") becomes a directory. A trailing separator always
means directory. Missing parents are created first.

Materialize is idempotent: paths that already exist are reported and left
untouched, so running it twice on the same tree changes nothing. Failures on
one path are logged and recorded in the returned report without stopping the
rest of the batch.
*/
package scaffold
