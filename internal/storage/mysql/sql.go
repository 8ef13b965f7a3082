package mysql

// A NULL id lets AUTO_INCREMENT assign one; LAST_INSERT_ID(id) makes the
// existing row id visible to LastInsertId on the duplicate path.
const upsertDestinationSQL = `
INSERT INTO destinations
  (id, name, country, cost_index, popularity, average_daily_cost, currency, region, raw)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  id                 = LAST_INSERT_ID(id),
  country            = VALUES(country),
  cost_index         = VALUES(cost_index),
  popularity         = VALUES(popularity),
  average_daily_cost = VALUES(average_daily_cost),
  currency           = VALUES(currency),
  region             = VALUES(region),
  raw                = COALESCE(VALUES(raw), destinations.raw),
  updated_at         = CURRENT_TIMESTAMP
`

const deleteActivitiesSQL = `DELETE FROM activities WHERE destination_id = ?`

const insertActivitiesPrefix = "INSERT INTO activities\n  (destination_id, source_id, name, category, cost, rating)\nVALUES "

const insertMissSQL = `
INSERT INTO ingest_misses (id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE http_status = VALUES(http_status), seen_at = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// One row per (destination, activity); destinations without activities
// come back once with NULL activity columns.
const listDestinationsSQL = `
SELECT
  d.id,
  d.name,
  d.country,
  d.cost_index,
  d.popularity,
  d.average_daily_cost,
  d.currency,
  d.region,
  a.source_id,
  a.name,
  a.category,
  a.cost,
  a.rating
FROM destinations d
LEFT JOIN activities a
  ON a.destination_id = d.id
ORDER BY d.id, a.id
`
