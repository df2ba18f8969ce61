package render

import "text/template"

// shellData feeds the static shell template. All fields are
// pre-serialized: the shell itself is fixed and carries no logic beyond
// substituting the frame size, the node fragments and the viewer data.
type shellData struct {
	Width     string // container width in px
	Height    string // container height in px
	NodesHTML string // concatenated node fragments
	NodesData string // JSON: per-node {id,x,y,width,height}, normalized
	EdgesData string // JSON: edge list passed through unchanged
}

// shellTemplate is the fixed output shell: style block, controls,
// container markup and the embedded viewer script. The script consumes
// only the node/edge data the assembler injects; it is emitted verbatim
// across runs and is not part of the conversion's algorithmic core.
var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0, maximum-scale=1.0, user-scalable=no">
    <meta name="apple-mobile-web-app-capable" content="yes">
    <title>Canvas Visualization</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            background-color: #1e1e1e;
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            overflow: hidden;
            color: #abb2bf;
        }

        #viewport {
            width: 100vw;
            height: 100vh;
            overflow: hidden;
            cursor: grab;
            position: relative;
            touch-action: none;
            -webkit-user-select: none;
            user-select: none;
        }

        #viewport.grabbing {
            cursor: grabbing;
        }

        #canvas-container {
            position: relative;
            width: {{.Width}}px;
            height: {{.Height}}px;
            transform-origin: 0 0;
            transition: transform 0.1s ease-out;
        }

        #edges-layer {
            position: absolute;
            top: 0;
            left: 0;
            width: 100%;
            height: 100%;
            pointer-events: none;
        }

        #nodes-layer {
            position: relative;
            width: 100%;
            height: 100%;
        }

        .node {
            position: absolute;
            border-radius: 8px;
            overflow: hidden;
        }

        .node-text {
            background-color: #282c34;
            border: 1px solid #3e4451;
            padding: 12px;
            color: #abb2bf;
            font-size: 14px;
            line-height: 1.5;
        }

        .node-file {
            background-color: #282c34;
            border: 1px solid #3e4451;
        }

        .node-file img {
            width: 100%;
            height: 100%;
            object-fit: cover;
            display: block;
        }

        .node-link {
            background-color: #282c34;
            border: 1px solid #3e4451;
            padding: 12px;
            color: #61afef;
            text-decoration: none;
            display: flex;
            align-items: center;
            justify-content: center;
        }

        .node-group {
            background-color: rgba(40, 44, 52, 0.5);
            border: 1px solid #3e4451;
        }

        .edge {
            fill: none;
            stroke: #abb2bf;
            stroke-width: 2;
        }

        .edge-arrow {
            fill: #abb2bf;
        }

        #controls {
            position: fixed;
            top: 20px;
            right: 20px;
            background-color: #282c34;
            border: 1px solid #3e4451;
            border-radius: 8px;
            padding: 12px;
            z-index: 1000;
            display: flex;
            flex-direction: column;
            gap: 8px;
        }

        .control-btn {
            background-color: #3e4451;
            border: none;
            color: #abb2bf;
            padding: 8px 16px;
            border-radius: 4px;
            cursor: pointer;
            font-size: 14px;
            transition: background-color 0.2s;
        }

        .control-btn:hover {
            background-color: #4e5461;
        }

        .control-btn:active {
            background-color: #2e3441;
        }

        #zoom-level {
            text-align: center;
            color: #61afef;
            font-size: 12px;
            padding: 4px;
        }

        #instructions {
            position: fixed;
            bottom: 20px;
            left: 20px;
            background-color: rgba(40, 44, 52, 0.9);
            border: 1px solid #3e4451;
            border-radius: 8px;
            padding: 12px;
            font-size: 12px;
            color: #abb2bf;
            z-index: 1000;
        }

        #instructions div {
            margin: 4px 0;
        }

        /* Mobile optimizations */
        @media (max-width: 768px) {
            #controls {
                top: 10px;
                right: 10px;
                padding: 8px;
                gap: 6px;
            }

            .control-btn {
                padding: 10px 14px;
                font-size: 13px;
                min-height: 44px;
            }

            #instructions {
                bottom: 10px;
                left: 10px;
                padding: 8px;
                font-size: 11px;
                max-width: calc(100vw - 20px);
            }

            #zoom-level {
                font-size: 11px;
            }
        }

        @media (max-width: 480px) {
            #instructions {
                font-size: 10px;
                padding: 6px;
            }

            #controls {
                padding: 6px;
                gap: 4px;
            }

            .control-btn {
                padding: 8px 12px;
                font-size: 12px;
            }
        }
    </style>
</head>
<body>
    <div id="controls">
        <button class="control-btn" id="zoom-in">Zoom In (+)</button>
        <button class="control-btn" id="zoom-out">Zoom Out (-)</button>
        <button class="control-btn" id="zoom-reset">Reset (0)</button>
        <div id="zoom-level">100%</div>
    </div>

    <div id="instructions">
        <div><strong>Controls:</strong></div>
        <div>• Mouse wheel / Pinch: Zoom in/out</div>
        <div>• Click + drag / Touch + drag: Pan around</div>
        <div>• Buttons or +/-/0 keys: Zoom controls</div>
    </div>

    <div id="viewport">
        <div id="canvas-container">
            <svg id="edges-layer">
                <defs>
                    <marker id="arrowhead" markerWidth="10" markerHeight="10" refX="9" refY="3" orient="auto">
                        <polygon points="0 0, 10 3, 0 6" class="edge-arrow" />
                    </marker>
                </defs>
            </svg>
            <div id="nodes-layer">
                {{.NodesHTML}}
            </div>
        </div>
    </div>

    <script>
        // Nodes and edges data
        const nodes = {{.NodesData}};
        const edges = {{.EdgesData}};

        // Create a map of node ID to node data
        const nodeMap = {};
        nodes.forEach(node => {
            nodeMap[node.id] = node;
        });

        // Calculate connection point based on side
        function getConnectionPoint(node, side) {
            const x = node.x;
            const y = node.y;
            const w = node.width;
            const h = node.height;

            switch (side) {
                case 'top':
                    return { x: x + w / 2, y: y };
                case 'right':
                    return { x: x + w, y: y + h / 2 };
                case 'bottom':
                    return { x: x + w / 2, y: y + h };
                case 'left':
                    return { x: x, y: y + h / 2 };
                default:
                    return { x: x + w / 2, y: y + h / 2 };
            }
        }

        // Generate SVG path for edge with Bezier curve
        function generateEdgePath(edge) {
            const fromNode = nodeMap[edge.fromNode];
            const toNode = nodeMap[edge.toNode];

            if (!fromNode || !toNode) {
                console.warn('Missing node for edge:', edge);
                return '';
            }

            const fromSide = edge.fromSide || 'right';
            const toSide = edge.toSide || 'left';

            const start = getConnectionPoint(fromNode, fromSide);
            const end = getConnectionPoint(toNode, toSide);

            // Calculate control points for smooth curve
            const dx = end.x - start.x;
            const dy = end.y - start.y;
            const distance = Math.sqrt(dx * dx + dy * dy);

            // Offset control points based on connection sides
            let cp1x, cp1y, cp2x, cp2y;

            const offset = Math.min(distance / 2, 100);

            switch (fromSide) {
                case 'top':
                    cp1x = start.x;
                    cp1y = start.y - offset;
                    break;
                case 'right':
                    cp1x = start.x + offset;
                    cp1y = start.y;
                    break;
                case 'bottom':
                    cp1x = start.x;
                    cp1y = start.y + offset;
                    break;
                case 'left':
                    cp1x = start.x - offset;
                    cp1y = start.y;
                    break;
            }

            switch (toSide) {
                case 'top':
                    cp2x = end.x;
                    cp2y = end.y - offset;
                    break;
                case 'right':
                    cp2x = end.x + offset;
                    cp2y = end.y;
                    break;
                case 'bottom':
                    cp2x = end.x;
                    cp2y = end.y + offset;
                    break;
                case 'left':
                    cp2x = end.x - offset;
                    cp2y = end.y;
                    break;
            }

            // Create cubic Bezier curve
            return ` + "`M ${start.x},${start.y} C ${cp1x},${cp1y} ${cp2x},${cp2y} ${end.x},${end.y}`" + `;
        }

        // Render edges
        const svg = document.getElementById('edges-layer');
        edges.forEach(edge => {
            const path = document.createElementNS('http://www.w3.org/2000/svg', 'path');
            path.setAttribute('d', generateEdgePath(edge));
            path.setAttribute('class', 'edge');

            // Add arrow marker if needed
            const toEnd = edge.toEnd || 'arrow';
            if (toEnd === 'arrow') {
                path.setAttribute('marker-end', 'url(#arrowhead)');
            }

            svg.appendChild(path);
        });

        // Zoom and Pan functionality
        const viewport = document.getElementById('viewport');
        const container = document.getElementById('canvas-container');
        const zoomLevelDisplay = document.getElementById('zoom-level');

        let scale = 1;
        let translateX = 0;
        let translateY = 0;
        let isDragging = false;
        let startX = 0;
        let startY = 0;

        const MIN_SCALE = 0.1;
        const MAX_SCALE = 5;
        const ZOOM_STEP = 0.1;

        function updateTransform() {
            container.style.transform = ` + "`translate(${translateX}px, ${translateY}px) scale(${scale})`" + `;
            zoomLevelDisplay.textContent = ` + "`${Math.round(scale * 100)}%`" + `;
        }

        function zoom(delta, centerX = null, centerY = null) {
            const oldScale = scale;
            scale = Math.max(MIN_SCALE, Math.min(MAX_SCALE, scale + delta));

            // Zoom towards mouse position if provided
            if (centerX !== null && centerY !== null) {
                const scaleRatio = scale / oldScale;
                translateX = centerX - (centerX - translateX) * scaleRatio;
                translateY = centerY - (centerY - translateY) * scaleRatio;
            }

            updateTransform();
        }

        function resetView() {
            scale = 1;
            translateX = 0;
            translateY = 0;
            updateTransform();
        }

        // Mouse wheel zoom
        viewport.addEventListener('wheel', (e) => {
            e.preventDefault();
            const delta = e.deltaY > 0 ? -ZOOM_STEP : ZOOM_STEP;
            const rect = viewport.getBoundingClientRect();
            const centerX = e.clientX - rect.left;
            const centerY = e.clientY - rect.top;
            zoom(delta, centerX, centerY);
        }, { passive: false });

        // Drag to pan
        viewport.addEventListener('mousedown', (e) => {
            isDragging = true;
            startX = e.clientX - translateX;
            startY = e.clientY - translateY;
            viewport.classList.add('grabbing');
        });

        document.addEventListener('mousemove', (e) => {
            if (!isDragging) return;
            translateX = e.clientX - startX;
            translateY = e.clientY - startY;
            updateTransform();
        });

        document.addEventListener('mouseup', () => {
            isDragging = false;
            viewport.classList.remove('grabbing');
        });

        // Button controls
        document.getElementById('zoom-in').addEventListener('click', () => {
            zoom(ZOOM_STEP);
        });

        document.getElementById('zoom-out').addEventListener('click', () => {
            zoom(-ZOOM_STEP);
        });

        document.getElementById('zoom-reset').addEventListener('click', () => {
            resetView();
        });

        // Keyboard controls
        document.addEventListener('keydown', (e) => {
            if (e.key === '+' || e.key === '=') {
                e.preventDefault();
                zoom(ZOOM_STEP);
            } else if (e.key === '-' || e.key === '_') {
                e.preventDefault();
                zoom(-ZOOM_STEP);
            } else if (e.key === '0') {
                e.preventDefault();
                resetView();
            }
        });

        // Mobile touch support
        let lastTouchDistance = 0;
        let touchStartX = 0;
        let touchStartY = 0;
        let isTouching = false;

        function getTouchDistance(touches) {
            const dx = touches[0].clientX - touches[1].clientX;
            const dy = touches[0].clientY - touches[1].clientY;
            return Math.sqrt(dx * dx + dy * dy);
        }

        function getTouchCenter(touches) {
            return {
                x: (touches[0].clientX + touches[1].clientX) / 2,
                y: (touches[0].clientY + touches[1].clientY) / 2
            };
        }

        viewport.addEventListener('touchstart', (e) => {
            if (e.touches.length === 1) {
                // Single touch - panning
                isTouching = true;
                touchStartX = e.touches[0].clientX - translateX;
                touchStartY = e.touches[0].clientY - translateY;
                viewport.classList.add('grabbing');
            } else if (e.touches.length === 2) {
                // Two touches - pinch to zoom
                e.preventDefault();
                lastTouchDistance = getTouchDistance(e.touches);
            }
        }, { passive: false });

        viewport.addEventListener('touchmove', (e) => {
            if (e.touches.length === 1 && isTouching) {
                // Single touch - panning
                e.preventDefault();
                translateX = e.touches[0].clientX - touchStartX;
                translateY = e.touches[0].clientY - touchStartY;
                updateTransform();
            } else if (e.touches.length === 2) {
                // Two touches - pinch to zoom
                e.preventDefault();
                const newDistance = getTouchDistance(e.touches);
                const center = getTouchCenter(e.touches);
                const rect = viewport.getBoundingClientRect();
                const centerX = center.x - rect.left;
                const centerY = center.y - rect.top;

                // Calculate zoom delta based on distance change
                const distanceChange = newDistance - lastTouchDistance;
                const zoomDelta = (distanceChange / 100) * ZOOM_STEP;

                zoom(zoomDelta, centerX, centerY);
                lastTouchDistance = newDistance;
            }
        }, { passive: false });

        viewport.addEventListener('touchend', (e) => {
            if (e.touches.length === 0) {
                isTouching = false;
                viewport.classList.remove('grabbing');
            } else if (e.touches.length === 1) {
                // Reset for single touch after pinch
                touchStartX = e.touches[0].clientX - translateX;
                touchStartY = e.touches[0].clientY - translateY;
                lastTouchDistance = 0;
            }
        }, { passive: false });

        // Initialize view centered
        updateTransform();
    </script>
</body>
</html>
`))
